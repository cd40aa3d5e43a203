package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const accountHTML = `<html><body>
<h3>Basic Information</h3>
<table>
  <tr><th>Username:</th><th>nathan</th></tr>
  <tr><th>Name:</th><th>Nathan C</th></tr>
  <tr><th>Creation Date:</th><th>2015-06-01 08:30:00 UTC</th></tr>
</table>
<h3>Device Information</h3>
<table><tr><th>Make:</th><th>Apple</th></tr></table>
<h3>Device History</h3>
<table>
  <tr><td>Make: Apple Model: iPhone14,2 Start Time: 2022-01-01 00:00:00 UTC Device Type: PHONE</td></tr>
  <tr><td>
    Make: Google
    Model: Pixel 7
    Start Time: 2023-05-05 00:00:00 UTC
    Device Type: PHONE
  </td></tr>
  <tr><td>nothing useful</td></tr>
</table>
<h3>Login History</h3>
<table></table>
</body></html>`

func TestParseAccount(t *testing.T) {
	acc, err := ParseAccount(strings.NewReader(accountHTML))
	require.NoError(t, err)

	require.Equal(t, "nathan", acc.Profile.Username)
	require.Equal(t, "Nathan C", acc.Profile.Name)
	require.True(t, acc.Profile.CreatedAt.Equal(time.Date(2015, 6, 1, 8, 30, 0, 0, time.UTC)))

	require.Equal(t, []Device{
		{Make: "Apple", Model: "iPhone14,2", StartTime: "2022-01-01 00:00:00 UTC", DeviceType: "PHONE"},
		{Make: "Google", Model: "Pixel 7", StartTime: "2023-05-05 00:00:00 UTC", DeviceType: "PHONE"},
	}, acc.Devices)
}

func TestParseAccount_SectionMismatch(t *testing.T) {
	html := strings.Replace(accountHTML, "<h3>Device History</h3>", "<h3>Devices</h3>", 1)
	_, err := ParseAccount(strings.NewReader(html))
	require.ErrorIs(t, err, ErrUnexpectedLayout)
	require.Contains(t, err.Error(), `"Devices"`)

	html = strings.Replace(accountHTML, "<h3>Login History</h3>", "", 1)
	_, err = ParseAccount(strings.NewReader(html))
	require.ErrorIs(t, err, ErrUnexpectedLayout)
}
