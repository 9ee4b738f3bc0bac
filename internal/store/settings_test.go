package store

import (
	"errors"
	"testing"
)

func TestSettingsRepository_SetAndGet(t *testing.T) {
	s := newTestStore(t)
	repo := s.Settings()

	if err := repo.Set("active_profile", "Subway Surfers"); err != nil {
		t.Fatalf("failed to set setting: %v", err)
	}

	value, err := repo.Get("active_profile")
	if err != nil {
		t.Fatalf("failed to get setting: %v", err)
	}
	if value != "Subway Surfers" {
		t.Errorf("value = %q, want %q", value, "Subway Surfers")
	}

	// Set on an existing key overwrites.
	if err := repo.Set("active_profile", "Temple Run"); err != nil {
		t.Fatalf("failed to overwrite setting: %v", err)
	}
	value, _ = repo.Get("active_profile")
	if value != "Temple Run" {
		t.Errorf("value after overwrite = %q, want %q", value, "Temple Run")
	}
}

func TestSettingsRepository_Get_NotFound(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Settings().Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
}

func TestSettingsRepository_Delete(t *testing.T) {
	s := newTestStore(t)
	repo := s.Settings()

	repo.Set("mode", "pose")
	if err := repo.Delete("mode"); err != nil {
		t.Fatalf("failed to delete setting: %v", err)
	}
	if _, err := repo.Get("mode"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got: %v", err)
	}

	// Deleting an absent key is a no-op.
	if err := repo.Delete("mode"); err != nil {
		t.Errorf("deleting missing key should not error: %v", err)
	}
}

func TestSettingsRepository_All(t *testing.T) {
	s := newTestStore(t)
	repo := s.Settings()

	repo.Set("mode", "motion")
	repo.Set("cooldown_s", "0.4")

	all, err := repo.All()
	if err != nil {
		t.Fatalf("failed to get all settings: %v", err)
	}
	if len(all) != 2 || all["mode"] != "motion" || all["cooldown_s"] != "0.4" {
		t.Errorf("All() = %v", all)
	}
}

func TestSettingsRepository_TypedGetters(t *testing.T) {
	s := newTestStore(t)
	repo := s.Settings()

	repo.Set("cooldown_s", "0.4")
	repo.Set("buffer_size", "12")
	repo.Set("mirror_view", "true")
	repo.Set("garbage", "not-a-number")

	if got := repo.GetFloat("cooldown_s", 1.0); got != 0.4 {
		t.Errorf("GetFloat() = %v, want 0.4", got)
	}
	if got := repo.GetInt("buffer_size", 5); got != 12 {
		t.Errorf("GetInt() = %v, want 12", got)
	}
	if got := repo.GetBool("mirror_view", false); !got {
		t.Error("GetBool() = false, want true")
	}
	if got := repo.GetString("mode", "pose"); got != "pose" {
		t.Errorf("GetString() fallback = %q, want %q", got, "pose")
	}

	// Malformed values fall back to the default.
	if got := repo.GetFloat("garbage", 2.5); got != 2.5 {
		t.Errorf("GetFloat(malformed) = %v, want default", got)
	}
	if got := repo.GetInt("garbage", 7); got != 7 {
		t.Errorf("GetInt(malformed) = %v, want default", got)
	}
	if got := repo.GetBool("garbage", true); !got {
		t.Error("GetBool(malformed) should fall back to default")
	}
}
