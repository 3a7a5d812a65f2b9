package share

import (
	"net/url"
	"strings"
	"testing"

	"vowterm/internal/invitation"
)

func TestCaption(t *testing.T) {
	inv := invitation.Default()
	got := Caption(inv)
	want := "You are invited to the wedding of Alex & Jordan!"
	if got != want {
		t.Errorf("Caption = %q, want %q", got, want)
	}
}

func TestTwitterURL(t *testing.T) {
	inv := invitation.Default()
	link := "https://vowterm.example/inv/42"
	got := TwitterURL(link, inv)

	if !strings.HasPrefix(got, "https://twitter.com/intent/tweet?") {
		t.Fatalf("unexpected prefix: %q", got)
	}
	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	q := u.Query()
	if q.Get("url") != link {
		t.Errorf("url param = %q, want %q", q.Get("url"), link)
	}
	if q.Get("text") != Caption(inv) {
		t.Errorf("text param = %q, want caption", q.Get("text"))
	}
}

func TestFacebookURL(t *testing.T) {
	link := "https://vowterm.example/inv/42?guest=a&b"
	got := FacebookURL(link)
	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if u.Host != "www.facebook.com" {
		t.Errorf("host = %q", u.Host)
	}
	if u.Query().Get("u") != link {
		t.Errorf("u param = %q, want original link round-tripped", u.Query().Get("u"))
	}
}

func TestWhatsAppURL(t *testing.T) {
	inv := invitation.Default()
	link := "https://vowterm.example/inv/42"
	got := WhatsAppURL(link, inv)

	if !strings.HasPrefix(got, "https://wa.me/?text=") {
		t.Fatalf("unexpected prefix: %q", got)
	}
	// Caption and link are joined by an encoded space inside the text param.
	want := url.QueryEscape(Caption(inv)) + "%20" + url.QueryEscape(link)
	if !strings.HasSuffix(got, want) {
		t.Errorf("text payload = %q, want suffix %q", got, want)
	}
}

func TestMapURLEscapesVenueQuery(t *testing.T) {
	inv := invitation.Default()
	got := MapURL(inv)

	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if u.Host != "www.google.com" || u.Path != "/maps/search/" {
		t.Errorf("unexpected endpoint: %q", got)
	}
	if u.Query().Get("api") != "1" {
		t.Errorf("api param = %q", u.Query().Get("api"))
	}
	want := inv.VenueName + " " + inv.Location
	if u.Query().Get("query") != want {
		t.Errorf("query param = %q, want %q", u.Query().Get("query"), want)
	}
}
