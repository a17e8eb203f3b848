package system

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/heartline/internal/cli"
	"github.com/julianstephens/heartline/internal/models"
	"github.com/julianstephens/heartline/internal/storage/sqlite"
	"github.com/julianstephens/heartline/internal/utils"
)

type fakeNotifier struct {
	titles []string
	bodies []string
	err    error
}

func (f *fakeNotifier) Notify(_ context.Context, title, text string) error {
	if f.err != nil {
		return f.err
	}
	f.titles = append(f.titles, title)
	f.bodies = append(f.bodies, text)
	return nil
}

func setupTestContext(t *testing.T, now time.Time) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	settings := models.DefaultSettings()
	settings.Timezone = "UTC"
	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("failed to save settings: %v", err)
	}

	var out bytes.Buffer
	return &cli.Context{
		Store: store,
		Clock: utils.FixedClock{Time: now},
		Out:   &out,
	}, &out
}

// seedStreak records completeDays fully completed days ending on the day before now.
func seedStreak(t *testing.T, ctx *cli.Context, patient string, now time.Time, completeDays int, todayDone bool) {
	t.Helper()
	bg := context.Background()
	index := now.AddDate(0, 0, -(completeDays + 1))
	if err := ctx.Store.SaveProfile(bg, models.Profile{
		PatientID:      patient,
		IndexEventDate: index.Format("2006-01-02"),
	}); err != nil {
		t.Fatalf("failed to save profile: %v", err)
	}
	for i := 1; i <= completeDays; i++ {
		day := index.AddDate(0, 0, i).Format("2006-01-02")
		if err := ctx.Store.SaveDailyTask(bg, models.DailyTask{
			PatientID: patient, Day: day, Medications: true, Health: true, Education: true,
		}); err != nil {
			t.Fatalf("failed to save task: %v", err)
		}
	}
	if todayDone {
		if err := ctx.Store.SaveDailyTask(bg, models.DailyTask{
			PatientID: patient, Day: now.Format("2006-01-02"), Medications: true, Health: true, Education: true,
		}); err != nil {
			t.Fatalf("failed to save task: %v", err)
		}
	}
}
