package services_test

import (
	"testing"

	"medimart/internal/repos"
	"medimart/internal/services"

	"golang.org/x/crypto/bcrypt"
)

func seedUser(t *testing.T, users *repos.UserRepo) {
	t.Helper()
	if _, err := users.DB.Exec(`
	CREATE TABLE users(id TEXT PRIMARY KEY, email TEXT UNIQUE, name TEXT,
	  password_hash TEXT, role TEXT, created_at TEXT, updated_at TEXT);
	CREATE TABLE sessions(id TEXT PRIMARY KEY, user_id TEXT, created_at TEXT, last_seen TEXT);
	`); err != nil {
		t.Fatal(err)
	}
	h, _ := bcrypt.GenerateFromPassword([]byte("Passw0rd!"), 4)
	if err := users.Create("u-1", "a@b.com", "Asha", string(h), "USER"); err != nil {
		t.Fatal(err)
	}
}

func TestAuthLoginAndSession(t *testing.T) {
	db := memdbAll(t)
	users := repos.NewUserRepo(db)
	seedUser(t, users)
	svc := &services.AuthService{Users: users}

	if _, err := svc.Login("sid-1", "a@b.com", "wrong"); err != services.ErrBadCreds {
		t.Fatalf("want ErrBadCreds, got %v", err)
	}

	u, err := svc.Login("sid-1", "a@b.com", "Passw0rd!")
	if err != nil {
		t.Fatal(err)
	}
	if u.Name != "Asha" {
		t.Fatalf("bad user: %+v", u)
	}

	cur, err := svc.CurrentUser("sid-1")
	if err != nil || cur.ID != "u-1" {
		t.Fatalf("session not bound: %v %+v", err, cur)
	}

	if err := svc.Logout("sid-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CurrentUser("sid-1"); err == nil {
		t.Fatal("session should be unbound after logout")
	}
}

func TestAuthRegisterAndProfileUpdate(t *testing.T) {
	db := memdbAll(t)
	users := repos.NewUserRepo(db)
	seedUser(t, users)
	svc := &services.AuthService{Users: users}

	if _, err := svc.Register("sid-2", "Dup", "a@b.com", "Passw0rd!"); err != services.ErrEmailTaken {
		t.Fatalf("want ErrEmailTaken, got %v", err)
	}

	u, err := svc.Register("sid-2", "Ravi", "ravi@b.com", "Passw0rd!")
	if err != nil {
		t.Fatal(err)
	}
	if u.Role != "USER" {
		t.Fatalf("new accounts are plain users: %+v", u)
	}

	updated, err := svc.UpdateProfile(u.ID, "Ravi K", "ravi.k@b.com", "")
	if err != nil {
		t.Fatal(err)
	}
	if updated.Name != "Ravi K" || updated.Email != "ravi.k@b.com" {
		t.Fatalf("profile not updated: %+v", updated)
	}

	// password change takes effect
	if _, err := svc.UpdateProfile(u.ID, "Ravi K", "ravi.k@b.com", "NewPassw0rd!"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Login("sid-3", "ravi.k@b.com", "Passw0rd!"); err != services.ErrBadCreds {
		t.Fatalf("old password should be rejected, got %v", err)
	}
	if _, err := svc.Login("sid-3", "ravi.k@b.com", "NewPassw0rd!"); err != nil {
		t.Fatal(err)
	}
}
