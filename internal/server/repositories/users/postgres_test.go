package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/oscardash/internal/common"
	"github.com/dmitrijs2005/oscardash/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const (
	insertQ = `(?s)^INSERT\s+INTO\s+users\s*\(username,\s*password,\s*birthdate,\s*email,\s*gender,\s*country\)\s*VALUES\s*\(\$1,\s*\$2,\s*NULLIF\(\$3,\s*''\)::date,\s*\$4,\s*\$5,\s*\$6\)\s*$`
	selectQ = `(?s)^SELECT\s+username,\s*password,\s*COALESCE\(to_char\(birthdate,\s*'YYYY-MM-DD'\),\s*''\),\s*email,\s*gender,\s*country\s+FROM\s+users\s+WHERE\s+username\s*=\s*\$1\s*$`
	existsQ = `(?s)^SELECT\s+EXISTS\s*\(SELECT\s+1\s+FROM\s+users\s+WHERE\s+username\s*=\s*\$1\)$`
	updateQ = `(?s)^UPDATE\s+users\s+SET\s+password\s*=\s*\$2\s+WHERE\s+username\s*=\s*\$1\s*$`
)

func alice() *models.User {
	return &models.User{
		UserName:  "alice",
		Password:  "abcd.ef01",
		Birthdate: "1990-04-12",
		Email:     "alice@example.com",
		Gender:    "Female",
		Country:   "France",
	}
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(insertQ).
		WithArgs("alice", "abcd.ef01", "1990-04-12", "alice@example.com", "Female", "France").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Create(context.Background(), alice()); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreate_Duplicate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(insertQ).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value"})

	err := repo.Create(context.Background(), alice())
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want common.ErrorAlreadyExists, got %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(insertQ).WillReturnError(errors.New("db down"))

	err := repo.Create(context.Background(), alice())
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetUserByLogin_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"username", "password", "birthdate", "email", "gender", "country"}).
		AddRow("alice", "abcd.ef01", "1990-04-12", "alice@example.com", "Female", "France")
	mock.ExpectQuery(selectQ).
		WithArgs("alice").
		WillReturnRows(rows)

	got, err := repo.GetUserByLogin(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetUserByLogin error: %v", err)
	}
	if *got != *alice() {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestGetUserByLogin_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectQ).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetUserByLogin(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestGetUserByLogin_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectQ).
		WithArgs("alice").
		WillReturnError(errors.New("db err"))

	_, err := repo.GetUserByLogin(context.Background(), "alice")
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestExists(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(existsQ).WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(existsQ).WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(existsQ).WithArgs("bob").
		WillReturnError(errors.New("db err"))

	ok, err := repo.Exists(context.Background(), "alice")
	if err != nil || !ok {
		t.Fatalf("alice: want true, got %v, %v", ok, err)
	}
	ok, err = repo.Exists(context.Background(), "ghost")
	if err != nil || ok {
		t.Fatalf("ghost: want false, got %v, %v", ok, err)
	}
	if _, err = repo.Exists(context.Background(), "bob"); err == nil {
		t.Fatal("bob: expected error")
	}
}

func TestUpdatePassword(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(updateQ).WithArgs("alice", "new.hash").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(updateQ).WithArgs("ghost", "new.hash").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(updateQ).WithArgs("bob", "new.hash").
		WillReturnError(errors.New("db err"))

	if err := repo.UpdatePassword(context.Background(), "alice", "new.hash"); err != nil {
		t.Fatalf("alice: %v", err)
	}
	if err := repo.UpdatePassword(context.Background(), "ghost", "new.hash"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("ghost: want not found, got %v", err)
	}
	err := repo.UpdatePassword(context.Background(), "bob", "new.hash")
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("bob: expected wrapped db error, got %v", err)
	}
}
