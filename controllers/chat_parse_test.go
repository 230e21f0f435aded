package controllers

import "testing"

func TestParseVerseJSON_Plain(t *testing.T) {
	text := `{"sanskrit":"श्लोक","translation":"Do your duty.","chapter":2,"verse":47}`
	v := parseVerseJSON(text)
	if v == nil {
		t.Fatal("expected a verse")
	}
	if v["translation"] != "Do your duty." {
		t.Fatalf("translation = %v", v["translation"])
	}
	if v["chapter"] != int64(2) || v["verse"] != int64(47) {
		t.Fatalf("chapter/verse = %v/%v", v["chapter"], v["verse"])
	}
}

func TestParseVerseJSON_CodeFenced(t *testing.T) {
	text := "Here you go:\n```json\n{\"sanskrit\":\"x\",\"translation\":\"Act without attachment.\",\"chapter\":3,\"verse\":19}\n```"
	v := parseVerseJSON(text)
	if v == nil {
		t.Fatal("expected a verse despite the code fence")
	}
	if v["chapter"] != int64(3) {
		t.Fatalf("chapter = %v", v["chapter"])
	}
}

func TestParseVerseJSON_Garbage(t *testing.T) {
	for _, text := range []string{"", "no json here", "{not valid", `{"sanskrit":"x"}`} {
		if v := parseVerseJSON(text); v != nil {
			t.Fatalf("expected nil for %q, got %v", text, v)
		}
	}
}

func TestValidUsername(t *testing.T) {
	valid := []string{"arjuna", "devotee-108", "Radha_Rani", "abc"}
	for _, s := range valid {
		if !validUsername(s) {
			t.Fatalf("%q should be valid", s)
		}
	}
	invalid := []string{"", "has space", "semi;colon", "<script>", "emoji🙏"}
	for _, s := range invalid {
		if validUsername(s) {
			t.Fatalf("%q should be invalid", s)
		}
	}
}

func TestSanitizeUsername(t *testing.T) {
	cases := map[string]string{
		"Arjuna":          "arjuna",
		"user@mail.com":   "user_mail_com",
		"__trimmed__":     "trimmed",
		"Mixed-Case.Name": "mixed_case_name",
		"日本語":             "",
	}
	for in, want := range cases {
		if got := sanitizeUsername(in); got != want {
			t.Fatalf("sanitizeUsername(%q) = %q, want %q", in, got, want)
		}
	}
}
