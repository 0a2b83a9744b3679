package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vytor/speakflash/internal/catalog"
	"github.com/vytor/speakflash/internal/errors"
	"github.com/vytor/speakflash/internal/flashcard"
	"github.com/vytor/speakflash/internal/models"
	"github.com/vytor/speakflash/internal/services"
	"github.com/vytor/speakflash/internal/session"
	"github.com/vytor/speakflash/internal/testutil"
)

var today = testutil.Date(2024, time.April, 10)

type filterRecorder struct {
	filters []models.CategoryFilter
}

func (r *filterRecorder) CategoryFilterChanged(f models.CategoryFilter) {
	r.filters = append(r.filters, f)
}

type fixture struct {
	catalog  *catalog.Catalog
	ledger   *flashcard.Ledger
	learner  services.LearnerService
	recorder *filterRecorder
}

// newFixture builds 20 items; odd ids are "travel", even ids are "dining".
func newFixture(t *testing.T) *fixture {
	c := testutil.NewCatalog(t, 20, func(i int) string {
		if i%2 == 1 {
			return "travel"
		}
		return "dining"
	})
	ledger := flashcard.NewLedger(flashcard.WithClock(testutil.Clock(today)))
	planner := session.NewPlanner(c, ledger)
	rec := &filterRecorder{}
	return &fixture{
		catalog:  c,
		ledger:   ledger,
		learner:  services.NewLearnerService(c, ledger, planner, rec, testutil.Clock(today)),
		recorder: rec,
	}
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, code, errors.As(err).Code)
}

var ctx = context.Background()
