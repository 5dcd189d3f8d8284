package sms

import (
	"errors"
	"testing"

	"github.com/shoptext/shoptext/internal/testutil"
)

// --- Phone formatting ---

func TestFormatPhone(t *testing.T) {
	t.Parallel()
	cases := []struct {
		input, cc, want string
	}{
		{"+2349118462627", "", "2349118462627"},
		{"2349118462627", "", "2349118462627"},
		{"09118462627", "234", "2349118462627"},
		{"+234 911 846 2627", "", "2349118462627"},
		{"+234-911-846-2627", "234", "2349118462627"},
		{"(0)911 846 2627", "234", "2349118462627"},
		{"+14155552671", "", "14155552671"},
	}
	for _, c := range cases {
		got, err := FormatPhone(c.input, c.cc)
		testutil.NoError(t, err)
		testutil.Equal(t, c.want, got)
	}
}

func TestFormatPhone_RejectsEmpty(t *testing.T) {
	t.Parallel()
	invalid := []string{
		"",
		"   ",
		"+",
		"---",
		"abc",
	}
	for _, p := range invalid {
		_, err := FormatPhone(p, "234")
		if !errors.Is(err, ErrInvalidPhone) {
			t.Errorf("FormatPhone(%q): got %v, want ErrInvalidPhone", p, err)
		}
	}
}

func TestFormatPhone_PassThroughInternational(t *testing.T) {
	t.Parallel()
	// Already in full international form without '+': unchanged.
	got, err := FormatPhone("2349118462627", "234")
	testutil.NoError(t, err)
	testutil.Equal(t, "2349118462627", got)
}

func TestFormatPhone_NoCountryCodeBoundaries(t *testing.T) {
	t.Parallel()
	// Without a default country code the leading zero survives: lossy
	// best-effort, nothing to prepend.
	got, err := FormatPhone("09118462627", "")
	testutil.NoError(t, err)
	testutil.Equal(t, "09118462627", got)

	// All-zero input with a country code collapses to just the code.
	got, err = FormatPhone("000", "234")
	testutil.NoError(t, err)
	testutil.Equal(t, "234", got)

	// All-zero input without a country code stays as-is.
	got, err = FormatPhone("000", "")
	testutil.NoError(t, err)
	testutil.Equal(t, "000", got)
}

func TestFormatPhone_CountryCodePrefixNotDoubled(t *testing.T) {
	t.Parallel()
	// A number that already starts with the country code is never prefixed
	// again, even when it arrived with punctuation.
	got, err := FormatPhone("+234 (911) 846-2627", "234")
	testutil.NoError(t, err)
	testutil.Equal(t, "2349118462627", got)
}

// --- Phone country detection ---

func TestPhoneCountry(t *testing.T) {
	t.Parallel()
	cases := []struct {
		phone, want string
	}{
		{"2349118462627", "NG"},
		{"14155552671", "US"},
		{"442079460958", "GB"},
		{"919876543210", "IN"},
	}
	for _, c := range cases {
		got := PhoneCountry(c.phone)
		testutil.Equal(t, c.want, got)
	}
}

func TestPhoneCountry_InvalidInputs(t *testing.T) {
	t.Parallel()
	testutil.Equal(t, "", PhoneCountry(""))
	testutil.Equal(t, "", PhoneCountry("abc"))
	testutil.Equal(t, "", PhoneCountry("1"))
}
