package pkg

import (
	"errors"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestName(t *testing.T) {
	if Name != "namedlogs" {
		t.Errorf("Expected Name to be %q, got %q", "namedlogs", Name)
	}

	if Description == "" {
		t.Error("Expected a non-empty Description")
	}
}

func TestVersion(t *testing.T) {
	if Version == "" || strings.ContainsAny(Version, " \n") {
		t.Errorf("Expected trimmed non-empty Version, got %q", Version)
	}

	if strings.Count(Version, ".") != 2 {
		t.Errorf("Expected semantic version, got %q", Version)
	}
}

func TestAuthor(t *testing.T) {
	if !slices.ContainsFunc(Author, func(a AuthorInfo) bool {
		return a.Name == "ardnew"
	}) {
		t.Errorf("Expected Author to contain ardnew, got %v", Author)
	}

	for i, author := range Author {
		if author.Name == "" && author.Email == "" {
			t.Errorf("Author[%d] must define at least Name or Email", i)
		}
	}
}

func TestError_IsSentinel(t *testing.T) {
	err := ErrReadConfig.Wrap(io.ErrUnexpectedEOF)

	if !errors.Is(err, ErrReadConfig) {
		t.Error("wrapped error should match its sentinel")
	}

	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Error("wrapped error should match the cause")
	}

	if errors.Is(err, ErrParseConfig) {
		t.Error("wrapped error should not match an unrelated sentinel")
	}

	nested := ErrWriteConfig.Wrap(ErrConfigExists.Wrapf("path %s", "x"))
	if !errors.Is(nested, ErrConfigExists) || !errors.Is(nested, ErrWriteConfig) {
		t.Error("nested sentinels should both match")
	}
}

func TestError_Message(t *testing.T) {
	err := ErrInvalidLevel.Wrapf("%q", "loud")

	if got, want := err.Error(), `invalid level: "loud"`; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	if got := MakeError(nil, nil); len(got) != 0 {
		t.Errorf("expected empty chain, got %v", got)
	}
}

func TestUnwrapErrors_Flattens(t *testing.T) {
	cause := errors.New("cause")
	joined := errors.Join(cause, io.EOF)

	chain := UnwrapErrors(joined)
	if len(chain) != 3 || chain[0] != cause || chain[1] != io.EOF {
		t.Errorf("unexpected chain %v", chain)
	}
}

func TestPaths(t *testing.T) {
	if filepath.Base(ConfigDir()) != Prefix() {
		t.Errorf("config dir %q should end with %q", ConfigDir(), Prefix())
	}

	if got := ConfigPath(ConfigFile); filepath.Dir(got) != ConfigDir() {
		t.Errorf("unexpected config path %q", got)
	}

	if got := CachePath(HistoryFile); filepath.Dir(got) != CacheDir() {
		t.Errorf("unexpected cache path %q", got)
	}

	if Prefix() == "" {
		t.Error("prefix must not be empty")
	}
}
