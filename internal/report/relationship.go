// Package report turns indexed events into relationship summaries, rankings,
// rendered conversations and JSON dumps.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Zuo-Peng/snapsimp/internal/analytics"
	"github.com/Zuo-Peng/snapsimp/internal/event"
	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
)

type Counts struct {
	Sent     int `json:"sent"`
	Received int `json:"received"`
}

// Ratio is absent (nil Value) when its denominator type never occurs.
type Ratio struct {
	Label string   `json:"label"`
	Value *float64 `json:"value,omitempty"`
}

type Response struct {
	Identity string                                    `json:"identity"`
	Stats    *analytics.DescriptiveStats[time.Duration] `json:"stats,omitempty"`
}

type ConversationSummary struct {
	Events           int           `json:"events"`
	First            time.Time     `json:"first"`
	Last             time.Time     `json:"last"`
	Duration         time.Duration `json:"duration"`
	DominantSender   string        `json:"dominant_sender"`
	DominantReceiver string        `json:"dominant_receiver"`
	SwitchingPoints  int           `json:"switching_points"`
	Responses        []Response    `json:"responses"`
}

type CalendarSummary struct {
	ActiveDays   int                                  `json:"active_days"`
	InactiveDays int                                  `json:"inactive_days"`
	GapFrom      *analytics.Date                      `json:"gap_from,omitempty"`
	GapTo        *analytics.Date                      `json:"gap_to,omitempty"`
	PerDay       *analytics.DescriptiveStats[float64] `json:"per_day,omitempty"`
}

// Relationship is everything known about the owner and one contact. A
// section that could not be computed is left empty and its error is kept in
// Errors under the section name.
type Relationship struct {
	Owner    string               `json:"owner"`
	Contact  string               `json:"contact"`
	Snaps    Counts               `json:"snaps"`
	Chats    Counts               `json:"chats"`
	Ratios   []Ratio              `json:"ratios"`
	SnapConv *ConversationSummary `json:"snap_conversation,omitempty"`
	ChatConv *ConversationSummary `json:"chat_conversation,omitempty"`
	Calendar CalendarSummary      `json:"calendar"`
	Errors   map[string]string    `json:"errors,omitempty"`
}

func BuildRelationship(owner, contact string, snaps []event.Snap, chats []event.Chat) (*Relationship, error) {
	snaps = analytics.Between(owner, contact, snaps)
	chats = analytics.Between(owner, contact, chats)
	if len(snaps) == 0 && len(chats) == 0 {
		return nil, fmt.Errorf("%w: no events between %s and %s", analytics.ErrEmptyInput, owner, contact)
	}

	r := &Relationship{
		Owner:   owner,
		Contact: contact,
		Snaps:   countsOf(owner, snaps),
		Chats:   countsOf(owner, chats),
		Errors:  map[string]string{},
	}

	r.Ratios = []Ratio{
		typeRatio("snaps sent IMAGE/VIDEO", snaps, owner, event.Image, event.Video),
		typeRatio("snaps received IMAGE/VIDEO", snaps, contact, event.Image, event.Video),
		typeRatio("chats sent TEXT/MEDIA", chats, owner, event.Text, event.Media),
		typeRatio("chats received TEXT/MEDIA", chats, contact, event.Text, event.Media),
	}

	var err error
	if r.SnapConv, err = summarize(owner, snaps); err != nil {
		r.Errors["snap conversation"] = err.Error()
	}
	if r.ChatConv, err = summarize(owner, chats); err != nil {
		r.Errors["chat conversation"] = err.Error()
	}

	all := append(
		lo.Map(snaps, func(s event.Snap, _ int) event.Event { return s }),
		lo.Map(chats, func(c event.Chat, _ int) event.Event { return c })...,
	)
	if r.Calendar, err = calendarOf(all); err != nil {
		r.Errors["calendar"] = err.Error()
	}
	return r, nil
}

func countsOf[E event.Event](owner string, events []E) Counts {
	sent := len(analytics.FilterBySender(events, owner))
	return Counts{Sent: sent, Received: len(events) - sent}
}

func typeRatio[E event.Event](label string, events []E, sender string, num, den event.Type) Ratio {
	v, err := analytics.TypeRatioBySender(events, sender, num, den)
	if err != nil {
		return Ratio{Label: label}
	}
	return Ratio{Label: label, Value: &v}
}

func summarize[E event.Event](owner string, events []E) (*ConversationSummary, error) {
	conv, err := analytics.NewConversation(events)
	if err != nil {
		return nil, err
	}
	first, _ := conv.Earliest()
	last, _ := conv.Latest()
	d, _ := conv.Duration()

	s := &ConversationSummary{
		Events:           conv.Len(),
		First:            first.Timestamp(),
		Last:             last.Timestamp(),
		Duration:         d,
		DominantSender:   conv.DominantSender(),
		DominantReceiver: conv.DominantReceiver(),
		SwitchingPoints:  len(conv.SwitchingPoints()),
	}
	contact, _ := conv.Other(owner)
	for _, id := range []string{owner, contact} {
		resp := Response{Identity: id}
		if stats, err := conv.ResponseStats(id); err == nil {
			resp.Stats = &stats
		}
		s.Responses = append(s.Responses, resp)
	}
	return s, nil
}

func calendarOf(events []event.Event) (CalendarSummary, error) {
	var c CalendarSummary
	c.ActiveDays = len(analytics.ActiveDays(events))
	inactive, err := analytics.InactiveDays(events)
	if err != nil {
		return c, err
	}
	c.InactiveDays = len(inactive)

	if from, to, ok, err := analytics.LongestGap(events); err == nil && ok {
		c.GapFrom, c.GapTo = &from, &to
	}
	if perDay, err := analytics.ActivityPerDay(events); err == nil {
		c.PerDay = &perDay
	}
	return c, nil
}

// RenderRelationship writes r as an indented plain text report.
func RenderRelationship(w io.Writer, r *Relationship) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s <> %s\n\n", r.Owner, r.Contact)

	fmt.Fprintf(&b, "snaps  sent %s  received %s\n", humanize.Comma(int64(r.Snaps.Sent)), humanize.Comma(int64(r.Snaps.Received)))
	fmt.Fprintf(&b, "chats  sent %s  received %s\n", humanize.Comma(int64(r.Chats.Sent)), humanize.Comma(int64(r.Chats.Received)))
	for _, ra := range r.Ratios {
		v := "n/a"
		if ra.Value != nil {
			v = fmt.Sprintf("%.2f", *ra.Value)
		}
		fmt.Fprintf(&b, "  %-28s %s\n", ra.Label, v)
	}

	writeConv := func(title string, s *ConversationSummary) {
		fmt.Fprintf(&b, "\n%s\n", title)
		if s == nil {
			if msg, ok := r.Errors[title]; ok {
				fmt.Fprintf(&b, "  unavailable: %s\n", msg)
			}
			return
		}
		fmt.Fprintf(&b, "  events     %s over %s\n", humanize.Comma(int64(s.Events)), formatDuration(s.Duration))
		fmt.Fprintf(&b, "  from       %s\n", event.FormatTimestamp(s.First))
		fmt.Fprintf(&b, "  to         %s\n", event.FormatTimestamp(s.Last))
		fmt.Fprintf(&b, "  dominant   sender %s, receiver %s\n", s.DominantSender, s.DominantReceiver)
		fmt.Fprintf(&b, "  turns      %d\n", s.SwitchingPoints)
		for _, resp := range s.Responses {
			if resp.Stats == nil {
				fmt.Fprintf(&b, "  %s replies  not enough data\n", resp.Identity)
				continue
			}
			fmt.Fprintf(&b, "  %s replies  min %s  avg %s  max %s\n", resp.Identity,
				formatDuration(resp.Stats.Minimum), formatDuration(resp.Stats.Average), formatDuration(resp.Stats.Maximum))
		}
	}
	writeConv("snap conversation", r.SnapConv)
	writeConv("chat conversation", r.ChatConv)

	fmt.Fprintf(&b, "\ncalendar\n")
	if msg, ok := r.Errors["calendar"]; ok {
		fmt.Fprintf(&b, "  unavailable: %s\n", msg)
	} else {
		fmt.Fprintf(&b, "  active days    %s\n", humanize.Comma(int64(r.Calendar.ActiveDays)))
		fmt.Fprintf(&b, "  inactive days  %s\n", humanize.Comma(int64(r.Calendar.InactiveDays)))
		if r.Calendar.GapFrom != nil {
			fmt.Fprintf(&b, "  longest gap    %s .. %s (%d days)\n", r.Calendar.GapFrom, r.Calendar.GapTo,
				r.Calendar.GapFrom.DaysUntil(*r.Calendar.GapTo)+1)
		}
		if r.Calendar.PerDay != nil {
			fmt.Fprintf(&b, "  per active day min %.0f  avg %.1f  max %.0f\n",
				r.Calendar.PerDay.Minimum, r.Calendar.PerDay.Average, r.Calendar.PerDay.Maximum)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// formatDuration trims sub-second noise and spells out days.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	if d < 24*time.Hour {
		return d.String()
	}
	days := d / (24 * time.Hour)
	if rest := d - days*24*time.Hour; rest > 0 {
		return fmt.Sprintf("%dd%s", int(days), rest)
	}
	return fmt.Sprintf("%dd", int(days))
}
