// Package share builds outbound links for an invitation: social share intents
// and a map search for the venue. Pure string construction, no network.
package share

import (
	"fmt"
	"net/url"

	"vowterm/internal/invitation"
)

// Caption is the share text attached to social links.
func Caption(inv invitation.Invitation) string {
	return fmt.Sprintf("You are invited to the wedding of %s & %s!", inv.Partner1, inv.Partner2)
}

// TwitterURL returns a tweet intent carrying the invitation link and caption.
func TwitterURL(link string, inv invitation.Invitation) string {
	return fmt.Sprintf("https://twitter.com/intent/tweet?url=%s&text=%s",
		url.QueryEscape(link), url.QueryEscape(Caption(inv)))
}

// FacebookURL returns a sharer link for the invitation.
func FacebookURL(link string) string {
	return "https://www.facebook.com/sharer/sharer.php?u=" + url.QueryEscape(link)
}

// WhatsAppURL returns a wa.me link with the caption followed by the
// invitation link, space-separated.
func WhatsAppURL(link string, inv invitation.Invitation) string {
	return fmt.Sprintf("https://wa.me/?text=%s%%20%s",
		url.QueryEscape(Caption(inv)), url.QueryEscape(link))
}

// MapURL returns a Google Maps search for "<venue> <location>".
func MapURL(inv invitation.Invitation) string {
	query := inv.VenueName + " " + inv.Location
	return "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(query)
}
