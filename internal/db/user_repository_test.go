package db

import (
	"testing"

	"github.com/avelinne/dosetrack/internal/models"
)

func TestUserRepositoryNormalizedEmailLookup(t *testing.T) {
	repos := newTestRepositories(t)
	seedTestUser(t, repos, "  Pat.Smith@Example.COM  ")

	found, err := repos.Users.FindByNormalizedEmail("pat.smith@example.com")
	if err != nil {
		t.Fatalf("FindByNormalizedEmail() unexpected error: %v", err)
	}
	if found.ID == 0 {
		t.Fatal("expected user to be found by normalized email")
	}

	exists, err := repos.Users.ExistsByNormalizedEmail("pat.smith@example.com")
	if err != nil {
		t.Fatalf("ExistsByNormalizedEmail() unexpected error: %v", err)
	}
	if !exists {
		t.Fatal("expected normalized email to exist")
	}

	exists, err = repos.Users.ExistsByNormalizedEmail("other@example.com")
	if err != nil {
		t.Fatalf("ExistsByNormalizedEmail() unexpected error: %v", err)
	}
	if exists {
		t.Fatal("expected unknown email to not exist")
	}
}

func TestUserRepositoryUpdateRole(t *testing.T) {
	repos := newTestRepositories(t)
	user := seedTestUser(t, repos, "switcher@example.com")

	if err := repos.Users.UpdateRole(user.ID, models.RoleCaretaker); err != nil {
		t.Fatalf("UpdateRole() unexpected error: %v", err)
	}

	reloaded, err := repos.Users.FindByID(user.ID)
	if err != nil {
		t.Fatalf("FindByID() unexpected error: %v", err)
	}
	if reloaded.Role != models.RoleCaretaker {
		t.Fatalf("expected role caretaker, got %q", reloaded.Role)
	}

	caretakers, err := repos.Users.ListByRole(models.RoleCaretaker)
	if err != nil {
		t.Fatalf("ListByRole() unexpected error: %v", err)
	}
	if len(caretakers) != 1 {
		t.Fatalf("expected 1 caretaker, got %d", len(caretakers))
	}
}
