package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/text/language"
)

func TestResolveTagPrecedence(t *testing.T) {
	t.Parallel()

	t.Run("query param wins", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "http://example.com/?lang=pt-BR", nil)
		req.Header.Set("Accept-Language", "en")
		req.AddCookie(&http.Cookie{Name: LangCookieName, Value: "en"})

		tag, persist := ResolveTag(req)
		if tag.String() != "pt-BR" {
			t.Fatalf("expected pt-BR, got %s", tag.String())
		}
		if !persist {
			t.Fatalf("expected persist to be true")
		}
	})

	t.Run("cookie wins over accept-language", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
		req.Header.Set("Accept-Language", "pt-BR")
		req.AddCookie(&http.Cookie{Name: LangCookieName, Value: "en"})

		tag, persist := ResolveTag(req)
		if tag.String() != "en-US" {
			t.Fatalf("expected en-US, got %s", tag.String())
		}
		if persist {
			t.Fatalf("expected persist to be false")
		}
	})

	t.Run("accept-language fallback", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
		req.Header.Set("Accept-Language", "pt-BR, en;q=0.9")

		tag, persist := ResolveTag(req)
		if tag.String() != "pt-BR" {
			t.Fatalf("expected pt-BR, got %s", tag.String())
		}
		if persist {
			t.Fatalf("expected persist to be false")
		}
	})

	t.Run("default when nothing set", func(t *testing.T) {
		tag, _ := ResolveTag(httptest.NewRequest(http.MethodGet, "http://example.com/", nil))
		if tag != Default() {
			t.Fatalf("expected default, got %s", tag.String())
		}
	})
}

func TestResolveTagInvalidQueryFallsBack(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "http://example.com/?lang=not-a-lang", nil)
	req.Header.Set("Accept-Language", "pt-BR")

	tag, persist := ResolveTag(req)
	if tag.String() != "pt-BR" {
		t.Fatalf("expected pt-BR, got %s", tag.String())
	}
	if persist {
		t.Fatal("invalid lang param must not be persisted")
	}
}

func TestResolveLocalizerPersistsExplicitChoice(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "http://example.com/?lang=pt-BR", nil)
	printer, tag := ResolveLocalizer(rr, req)
	if tag != language.BrazilianPortuguese {
		t.Fatalf("tag = %v, want pt-BR", tag)
	}
	if got := printer.Sprintf("home.tagline"); got != "criando um meta-framework" {
		t.Fatalf("home.tagline = %q", got)
	}
	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != LangCookieName || cookies[0].Value != "pt-BR" {
		t.Fatalf("unexpected cookies: %+v", cookies)
	}
}

func TestResolveLocalizerWithoutParamSetsNoCookie(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	printer, _ := ResolveLocalizer(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if got := printer.Sprintf("home.heading"); got != "this is the pick-a-rick finally" {
		t.Fatalf("home.heading = %q", got)
	}
	if len(rr.Result().Cookies()) != 0 {
		t.Fatal("expected no cookies")
	}
}

func TestLanguageOptionsMarksActive(t *testing.T) {
	t.Parallel()

	options := LanguageOptions(Printer(language.AmericanEnglish), language.BrazilianPortuguese)
	if len(options) != 2 {
		t.Fatalf("len(options) = %d, want 2", len(options))
	}
	if options[0].Label != "EN" || options[1].Label != "PT-BR" {
		t.Fatalf("labels = %q, %q", options[0].Label, options[1].Label)
	}
	if options[0].Active || !options[1].Active {
		t.Fatalf("unexpected active flags: %+v", options)
	}
}

func TestLanguageURL(t *testing.T) {
	t.Parallel()

	got := LanguageURL("/characters", "page=2", "en-US")
	if got != "/characters?lang=en-US&page=2" {
		t.Fatalf("LanguageURL = %q", got)
	}
	if got := LanguageURL("", "", "pt-BR"); got != "/?lang=pt-BR" {
		t.Fatalf("LanguageURL(empty) = %q", got)
	}
}
