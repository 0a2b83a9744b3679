package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/speakflash/internal/models"
)

func TestPrintStats(t *testing.T) {
	var buf bytes.Buffer
	err := printStats(&buf, models.ProgressStat{
		TotalItems: 20, StartedCards: 4, DueCards: 1, MasteredCards: 1,
		TotalReviews: 9, Accuracy: 66.7, AvgEaseFactor: 2.45,
	}, []models.CategoryStat{
		{Category: "travel", TotalItems: 10, NewCards: 8, LearningCards: 1, MasteredCards: 1, DueCards: 1},
		{Category: "small-talk", TotalItems: 10, NewCards: 8, LearningCards: 2},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "items: 20  started: 4  due: 1  mastered: 1", lines[0])
	assert.Equal(t, "reviews: 9  accuracy: 66.7%  avg ease: 2.45", lines[1])
	assert.True(t, strings.HasPrefix(lines[3], "CATEGORY    ITEMS"))
	assert.Equal(t, []string{"small-talk", "10", "8", "2", "0", "0"}, strings.Fields(lines[5]))
}

func TestResetRequiresConfirmation(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"reset"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")
}

type stubCloser struct{ err error }

func (c stubCloser) Close(context.Context) error { return c.err }

func TestCloseInto(t *testing.T) {
	flushErr := errors.New("final flush failed")
	runErr := errors.New("stats failed")

	tests := []struct {
		name     string
		runErr   error
		closeErr error
		want     error
	}{
		{"clean", nil, nil, nil},
		{"close error surfaces", nil, flushErr, flushErr},
		{"earlier error wins", runErr, flushErr, runErr},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.runErr
			closeInto(context.Background(), stubCloser{err: tt.closeErr}, &err)
			assert.Equal(t, tt.want, err)
		})
	}
}
