package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const minimal = `
width = 800
height = 600

[[sections]]
anchor = "home"
height = 600

  [[sections.discs]]
  name = "sun"
  diameter = 100
  left = "25%"
  top = 120
`

func TestParseMinimal(t *testing.T) {
	l, err := Parse([]byte(minimal))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := Disc{
		Name:     "sun",
		Diameter: 100,
		Left:     Length{Value: 25, Percent: true},
		Top:      Length{Value: 120},
	}
	if diff := cmp.Diff(want, l.Sections[0].Discs[0]); diff != "" {
		t.Errorf("disc mismatch (-want +got):\n%s", diff)
	}
	if l.Nav != nil || l.Sidebar != nil || l.Momentum != nil {
		t.Error("optional tables should stay nil when absent")
	}
	if l.PageHeight() != 600 || l.DiscCount() != 1 {
		t.Errorf("PageHeight = %v, DiscCount = %d", l.PageHeight(), l.DiscCount())
	}
}

func TestLengthUnmarshal(t *testing.T) {
	tests := []struct {
		in      any
		want    Length
		wantErr bool
	}{
		{int64(40), Length{Value: 40}, false},
		{12.5, Length{Value: 12.5}, false},
		{"38%", Length{Value: 38, Percent: true}, false},
		{" 7.5 % ", Length{Value: 7.5, Percent: true}, false},
		{"64", Length{Value: 64}, false},
		{"wide", Length{}, true},
		{true, Length{}, true},
	}
	for _, tt := range tests {
		var got Length
		err := got.UnmarshalTOML(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("UnmarshalTOML(%v) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("UnmarshalTOML(%v) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestLengthString(t *testing.T) {
	if got := (Length{Value: 38, Percent: true}).String(); got != "38%" {
		t.Errorf("String() = %q, want 38%%", got)
	}
	if got := (Length{Value: 12.5}).String(); got != "12.5" {
		t.Errorf("String() = %q, want 12.5", got)
	}
}

func TestHex(t *testing.T) {
	var h Hex
	if err := h.UnmarshalText([]byte("#ff0000")); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if !h.Set || h.R != 1 || h.G != 0 || h.B != 0 {
		t.Errorf("hex = %+v, want set red", h)
	}
	if err := h.UnmarshalText([]byte("red")); err == nil {
		t.Error("expected error for a color name")
	}

	var unset Hex
	if got := unset.Or("#0000ff"); got.B != 1 || got.R != 0 {
		t.Errorf("Or fallback = %+v, want blue", got)
	}
	if got := h.Or("#0000ff"); got.R != 1 {
		t.Errorf("Or on set value = %+v, want red", got)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		toml string
		want string
	}{
		{"zero viewport", strings.Replace(minimal, "width = 800", "width = 0", 1), "must be positive"},
		{"missing anchor", strings.Replace(minimal, `anchor = "home"`, `anchor = ""`, 1), "missing anchor"},
		{"zero diameter", strings.Replace(minimal, "diameter = 100", "diameter = 0", 1), "diameter"},
		{"percent range", strings.Replace(minimal, `"25%"`, `"140%"`, 1), "out of range"},
		{"unknown key", minimal + "\ncolour = \"#fff\"\n", "unknown key"},
		{"unknown link", minimal + "\n[nav]\nheight = 64\nlinks = [{ label = \"Blog\", anchor = \"blog\" }]\n", `unknown anchor "blog"`},
		{"duplicate anchor", minimal + "\n[[sections]]\nanchor = \"home\"\nheight = 100\n", "duplicate anchor"},
		{"bad color", strings.Replace(minimal, "height = 600\n", "height = 600\nbackground = \"#zz\"\n", 1), "color"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.toml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestValidateNoDiscs(t *testing.T) {
	doc := `
width = 800
height = 600

[[sections]]
anchor = "home"
height = 600
`
	_, err := Parse([]byte(doc))
	if !errors.Is(err, ErrNoDiscs) {
		t.Errorf("err = %v, want ErrNoDiscs", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.toml")
	if err := os.WriteFile(path, []byte(minimal), 0o644); err != nil {
		t.Fatal(err)
	}
	l, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if l.Sections[0].Anchor != "home" {
		t.Errorf("anchor = %q, want home", l.Sections[0].Anchor)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file err = %v, want ErrNotExist", err)
	}
}

func TestDefault(t *testing.T) {
	l := Default()
	if l.DiscCount() != 6 {
		t.Errorf("DiscCount = %d, want 6", l.DiscCount())
	}
	if l.PageHeight() != 2220 {
		t.Errorf("PageHeight = %v, want 2220", l.PageHeight())
	}
	if l.Nav == nil || len(l.Nav.Links) != 4 {
		t.Fatal("default layout should have four nav links")
	}
	if l.Sidebar == nil || len(l.Sidebar.Links) != 0 {
		t.Error("default sidebar should inherit nav links")
	}
	if r := l.Sections[0].Reveal; r == nil || *r {
		t.Error("first section should opt out of the reveal")
	}
}
