package analytics

import (
	"testing"
	"time"

	"github.com/Zuo-Peng/snapsimp/internal/event"
	"github.com/stretchr/testify/require"
)

func TestCountBySender_OrdersByCountThenFirstSeen(t *testing.T) {
	snaps := []event.Snap{
		snap(t, "carol", "me", event.Image, at(0)),
		snap(t, "bob", "me", event.Image, at(1)),
		snap(t, "alice", "me", event.Video, at(2)),
		snap(t, "alice", "me", event.Image, at(3)),
		snap(t, "bob", "me", event.Image, at(4)),
	}

	ranking := CountBySender(snaps)

	require.Equal(t, Ranking{
		{Identity: "bob", Count: 2},
		{Identity: "alice", Count: 2},
		{Identity: "carol", Count: 1},
	}, ranking)
	require.Equal(t, len(snaps), ranking.Total())
	require.Equal(t, 2, ranking.Of("alice"))
	require.Equal(t, 0, ranking.Of("dave"))
	require.Equal(t, []string{"bob", "alice", "carol"}, ranking.Identities())
}

func TestCountByReceiver(t *testing.T) {
	snaps := []event.Snap{
		snap(t, "me", "alice", event.Image, at(0)),
		snap(t, "me", "bob", event.Image, at(1)),
		snap(t, "me", "bob", event.Image, at(2)),
	}
	require.Equal(t, Ranking{{"bob", 2}, {"alice", 1}}, CountByReceiver(snaps))
}

func TestTopSenderAndReceiver(t *testing.T) {
	snaps := []event.Snap{
		snap(t, "alice", "me", event.Image, at(0)),
		snap(t, "me", "bob", event.Image, at(1)),
		snap(t, "alice", "me", event.Image, at(2)),
	}

	sender, err := TopSender(snaps)
	require.NoError(t, err)
	require.Equal(t, "alice", sender)

	receiver, err := TopReceiver(snaps)
	require.NoError(t, err)
	require.Equal(t, "me", receiver)
}

func TestTopSender_EmptyInput(t *testing.T) {
	_, err := TopSender([]event.Snap{})
	require.ErrorIs(t, err, ErrEmptyInput)

	_, err = TopReceiver[event.Chat](nil)
	require.ErrorIs(t, err, ErrEmptyInput)
}

func TestFilters_PreserveOrder(t *testing.T) {
	snaps := []event.Snap{
		snap(t, "alice", "me", event.Image, at(3)),
		snap(t, "bob", "me", event.Image, at(1)),
		snap(t, "alice", "me", event.Video, at(2)),
		snap(t, "me", "alice", event.Video, at(0)),
	}

	fromAlice := FilterBySender(snaps, "alice")
	require.Equal(t, []event.Snap{snaps[0], snaps[2]}, fromAlice)

	toAlice := FilterByReceiver(snaps, "alice")
	require.Equal(t, []event.Snap{snaps[3]}, toAlice)

	require.Empty(t, FilterBySender(snaps, "nobody"))
}

func TestTypeRatio(t *testing.T) {
	snaps := []event.Snap{
		snap(t, "alice", "me", event.Image, at(0)),
		snap(t, "alice", "me", event.Image, at(1)),
		snap(t, "alice", "me", event.Image, at(2)),
		snap(t, "alice", "me", event.Video, at(3)),
		snap(t, "alice", "me", event.Video, at(4)),
	}
	ratio, err := TypeRatio(snaps, event.Image, event.Video)
	require.NoError(t, err)
	require.InDelta(t, 1.5, ratio, 1e-9)
}

func TestTypeRatio_ZeroDenominator(t *testing.T) {
	var snaps []event.Snap
	for i := 0; i < 5; i++ {
		snaps = append(snaps, snap(t, "alice", "me", event.Image, at(i)))
	}
	_, err := TypeRatio(snaps, event.Image, event.Video)
	require.ErrorIs(t, err, ErrDivisionByZero)
}

func TestTypeRatioOfTop(t *testing.T) {
	snaps := []event.Snap{
		snap(t, "alice", "me", event.Image, at(0)),
		snap(t, "alice", "me", event.Video, at(1)),
		snap(t, "bob", "me", event.Video, at(2)),
		snap(t, "alice", "me", event.Image, at(3)),
	}
	ratio, err := TypeRatioOfTopSender(snaps, event.Image, event.Video)
	require.NoError(t, err)
	require.InDelta(t, 2.0, ratio, 1e-9)

	ratio, err = TypeRatioBySender(snaps, "bob", event.Video, event.Image)
	require.ErrorIs(t, err, ErrDivisionByZero)
	require.Zero(t, ratio)

	_, err = TypeRatioOfTopReceiver([]event.Snap{}, event.Image, event.Video)
	require.ErrorIs(t, err, ErrEmptyInput)
}

func TestSortAndSpan(t *testing.T) {
	snaps := []event.Snap{
		snap(t, "alice", "me", event.Image, at(30)),
		snap(t, "alice", "me", event.Image, at(10)),
		snap(t, "alice", "me", event.Image, at(20)),
	}

	asc := SortAscending(snaps)
	require.Equal(t, at(10), asc[0].Timestamp())
	require.Equal(t, at(30), asc[2].Timestamp())
	require.Equal(t, at(30), snaps[0].Timestamp(), "input must not be reordered")

	desc := SortDescending(snaps)
	require.Equal(t, at(30), desc[0].Timestamp())

	span, err := Span(snaps)
	require.NoError(t, err)
	require.Equal(t, at(10), span.Start)
	require.Equal(t, at(30), span.End)

	_, err = Span(snaps[:1])
	require.ErrorIs(t, err, ErrInsufficientData)

	d, err := DurationWithTopSender(snaps)
	require.NoError(t, err)
	require.Equal(t, 20*time.Minute, d)
}
