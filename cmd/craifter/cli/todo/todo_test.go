package todo

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriority(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Priority
	}{
		{"low", PriorityLow},
		{"medium", PriorityMedium},
		{"high", PriorityHigh},
		{"", PriorityMedium},
		{"HIGH", PriorityMedium},
		{"urgent", PriorityMedium},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ParsePriority(tt.in))
		})
	}
}

func TestParseStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Status
	}{
		{"pending", StatusPending},
		{"in_progress", StatusInProgress},
		{"completed", StatusCompleted},
		{"bogus_status", StatusPending},
		{"in progress", StatusPending},
		{"", StatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ParseStatus(tt.in))
		})
	}
}

func TestList_AddDefaultsToPending(t *testing.T) {
	t.Parallel()
	l := NewList()

	l.Add("t1", "Fix it", ParsePriority(""))

	item, ok := l.Get("t1")
	require.True(t, ok)
	assert.Equal(t, "Fix it", item.Task)
	assert.Equal(t, StatusPending, item.Status)
	assert.Equal(t, PriorityMedium, item.Priority)
}

func TestList_UpdateStatus(t *testing.T) {
	t.Parallel()
	l := NewList()
	l.Add("t1", "Fix it", PriorityHigh)

	assert.True(t, l.UpdateStatus("t1", StatusCompleted))
	item, _ := l.Get("t1")
	assert.Equal(t, StatusCompleted, item.Status)

	assert.True(t, l.UpdateStatus("t1", ParseStatus("bogus_status")))
	item, _ = l.Get("t1")
	assert.Equal(t, StatusPending, item.Status)
}

func TestList_UpdateStatusUnknownIDIsNoOp(t *testing.T) {
	t.Parallel()
	l := NewList()
	l.Add("t1", "Fix it", PriorityLow)

	assert.False(t, l.UpdateStatus("ghost", StatusCompleted))
	assert.Equal(t, []Item{{ID: "t1", Task: "Fix it", Status: StatusPending, Priority: PriorityLow}}, l.Items())
}

func TestList_DuplicateIDsUpdateFirst(t *testing.T) {
	t.Parallel()
	l := NewList()
	l.Add("dup", "first", PriorityLow)
	l.Add("dup", "second", PriorityLow)

	l.UpdateStatus("dup", StatusInProgress)

	items := l.Items()
	require.Len(t, items, 2)
	assert.Equal(t, StatusInProgress, items[0].Status)
	assert.Equal(t, StatusPending, items[1].Status)
}

func TestList_Display(t *testing.T) {
	t.Parallel()
	l := NewList()
	l.Add("fix_bug", "Fix login issue", PriorityHigh)
	l.Add("docs", "Write docs", PriorityLow)
	l.UpdateStatus("docs", StatusInProgress)

	var out bytes.Buffer
	l.Display(&out)

	assert.Equal(t,
		"[fix_bug] Fix login issue (pending, high)\n[docs] Write docs (in progress, low)\n",
		out.String())
}
