package export

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/Zuo-Peng/snapsimp/internal/event"
)

// accountSections are the h3 labels of account.html, in page order.
var accountSections = []string{"Basic Information", "Device Information", "Device History", "Login History"}

const (
	basicInfoTable     = 0
	deviceHistoryTable = 2
)

type Profile struct {
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Device struct {
	Make       string `json:"make"`
	Model      string `json:"model"`
	StartTime  string `json:"start_time"`
	DeviceType string `json:"device_type"`
}

type Account struct {
	Profile Profile  `json:"profile"`
	Devices []Device `json:"devices"`
}

func ParseAccount(r io.Reader) (*Account, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("read html: %w", err)
	}
	if err := checkSections(doc); err != nil {
		return nil, err
	}

	tables := doc.Find("table")
	if tables.Length() <= deviceHistoryTable {
		return nil, fmt.Errorf("%w: account page has %d tables", ErrUnexpectedLayout, tables.Length())
	}

	profile, err := parseProfile(tables.Eq(basicInfoTable))
	if err != nil {
		return nil, err
	}

	var devices []Device
	tables.Eq(deviceHistoryTable).Find("tr").Each(func(_ int, tr *goquery.Selection) {
		if d, ok := parseDevice(tr.Text()); ok {
			devices = append(devices, d)
		}
	})
	return &Account{Profile: profile, Devices: devices}, nil
}

func checkSections(doc *goquery.Document) error {
	headers := doc.Find("h3")
	if headers.Length() != len(accountSections) {
		return fmt.Errorf("%w: want %d h3 headers, found %d", ErrUnexpectedLayout, len(accountSections), headers.Length())
	}
	var err error
	headers.EachWithBreak(func(i int, h *goquery.Selection) bool {
		if got := strings.TrimSpace(h.Text()); got != accountSections[i] {
			err = fmt.Errorf("%w: h3 %d is %q, want %q", ErrUnexpectedLayout, i, got, accountSections[i])
			return false
		}
		return true
	})
	return err
}

// parseProfile reads the username, name and creation rows; the value is the
// second header cell of each row.
func parseProfile(table *goquery.Selection) (Profile, error) {
	rows := table.Find("tr")
	if rows.Length() < 3 {
		return Profile{}, fmt.Errorf("%w: basic information has %d rows", ErrUnexpectedLayout, rows.Length())
	}
	value := func(i int) string {
		return strings.TrimSpace(rows.Eq(i).Find("th").Eq(1).Text())
	}

	created, err := event.ParseTimestamp(value(2))
	if err != nil {
		return Profile{}, fmt.Errorf("account creation date: %w", err)
	}
	return Profile{Username: value(0), Name: value(1), CreatedAt: created}, nil
}

var deviceRe = regexp.MustCompile(`(?s)Make:\s*(.*?)\s*Model:\s*(.*?)\s*Start Time:\s*(.*?)\s*Device Type:\s*(.*?)\s*$`)

func parseDevice(text string) (Device, bool) {
	m := deviceRe.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return Device{}, false
	}
	return Device{Make: m[1], Model: m[2], StartTime: m[3], DeviceType: m[4]}, true
}

func ParseAccountFile(path string) (*Account, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseAccount(f)
}
