package store

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
)

func newMockStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schedule_view_kv").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	s, err := newPostgresStore(context.Background(), mock)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	return s, mock
}

func TestPostgresStoreGetSetRemove(t *testing.T) {
	s, mock := newMockStore(t)
	ctx := context.Background()

	mock.ExpectExec("INSERT INTO schedule_view_kv").
		WithArgs(KeySelectedDate, "2024-10-22").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery("SELECT value FROM schedule_view_kv").
		WithArgs(KeySelectedDate).
		WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow("2024-10-22"))
	mock.ExpectExec("DELETE FROM schedule_view_kv").
		WithArgs(KeySelectedDate).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectQuery("SELECT value FROM schedule_view_kv").
		WithArgs(KeySelectedDate).
		WillReturnError(pgx.ErrNoRows)

	if err := s.Set(ctx, KeySelectedDate, "2024-10-22"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if v, ok, err := s.Get(ctx, KeySelectedDate); err != nil || !ok || v != "2024-10-22" {
		t.Fatalf("expected stored value, got %q ok=%v err=%v", v, ok, err)
	}
	if err := s.Remove(ctx, KeySelectedDate); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if _, ok, err := s.Get(ctx, KeySelectedDate); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresStoreErrors(t *testing.T) {
	s, mock := newMockStore(t)
	ctx := context.Background()
	boom := errors.New("connection reset")

	mock.ExpectQuery("SELECT value FROM schedule_view_kv").WithArgs("k").WillReturnError(boom)
	mock.ExpectExec("INSERT INTO schedule_view_kv").WithArgs("k", "v").WillReturnError(boom)

	if _, _, err := s.Get(ctx, "k"); !errors.Is(err, boom) {
		t.Fatalf("expected query error, got %v", err)
	}
	if err := s.Set(ctx, "k", "v"); !errors.Is(err, boom) {
		t.Fatalf("expected exec error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresStoreSchemaFailure(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	mock.ExpectExec("CREATE TABLE").WillReturnError(errors.New("permission denied"))
	if _, err := newPostgresStore(context.Background(), mock); err == nil {
		t.Fatalf("expected schema error")
	}
}
