package window

import (
	"image"
	"testing"
)

type fakeWindow struct {
	title   string
	appName string
}

func (f fakeWindow) Title() string                      { return f.title }
func (f fakeWindow) AppName() string                    { return f.appName }
func (f fakeWindow) CaptureImage() (image.Image, error) { return nil, nil }

func TestSelect_TitleOutranksProcessPath(t *testing.T) {
	byPath := fakeWindow{title: "Inbox", appName: "WeChat"}
	byTitle := fakeWindow{title: "Chat with Alice", appName: "Telegram"}

	active := ActiveInfo{
		Title:       "Chat with Alice",
		ProcessPath: `C:\Program Files\Tencent\WeChat\WeChat.exe`,
	}

	got, ok := Select(active, []Capturable{byPath, byTitle})
	if !ok {
		t.Fatal("Select returned no match")
	}
	if got.Title() != byTitle.title {
		t.Errorf("Select = %q; want %q", got.Title(), byTitle.title)
	}
}

func TestSelect_FirstSubstringMatchWins(t *testing.T) {
	first := fakeWindow{title: "Window A", appName: "chat"}
	second := fakeWindow{title: "Window B", appName: "chatapp"}

	active := ActiveInfo{
		Title:       "Something else",
		ProcessPath: "/usr/lib/chatapp/chatapp",
	}

	got, ok := Select(active, []Capturable{first, second})
	if !ok {
		t.Fatal("Select returned no match")
	}
	if got.Title() != "Window A" {
		t.Errorf("Select = %q; want %q", got.Title(), "Window A")
	}

	got, _ = Select(active, []Capturable{second, first})
	if got.Title() != "Window B" {
		t.Errorf("Select after reorder = %q; want %q", got.Title(), "Window B")
	}
}

func TestSelect_CaseInsensitivePath(t *testing.T) {
	active := ActiveInfo{ProcessPath: `C:\APPS\DISCORD\Discord.exe`}
	candidates := []Capturable{fakeWindow{title: "General", appName: "discord"}}

	if _, ok := Select(active, candidates); !ok {
		t.Error("Select did not match app name case-insensitively")
	}
}

func TestSelect_NoMatch(t *testing.T) {
	tests := []struct {
		name       string
		active     ActiveInfo
		candidates []Capturable
	}{
		{
			name:   "no candidates",
			active: ActiveInfo{Title: "x", ProcessPath: "/bin/x"},
		},
		{
			name:       "unrelated",
			active:     ActiveInfo{Title: "Editor", ProcessPath: "/usr/bin/vim"},
			candidates: []Capturable{fakeWindow{title: "Browser", appName: "firefox"}},
		},
		{
			name:       "empty app name never matches",
			active:     ActiveInfo{Title: "Editor", ProcessPath: "/usr/bin/vim"},
			candidates: []Capturable{fakeWindow{title: "Nameless", appName: ""}},
		},
		{
			name:       "empty active title never matches empty candidate title",
			active:     ActiveInfo{},
			candidates: []Capturable{fakeWindow{title: "", appName: "x"}},
		},
	}

	for _, tc := range tests {
		if got, ok := Select(tc.active, tc.candidates); ok {
			t.Errorf("%s: Select = %q; want no match", tc.name, got.Title())
		}
	}
}

func TestAppNameFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{`C:\Program Files\Tencent\WeChat\WeChat.exe`, "WeChat"},
		{"/usr/bin/telegram-desktop", "telegram-desktop"},
		{"", ""},
	}

	for _, tc := range tests {
		if got := appNameFromPath(tc.path); got != tc.want {
			t.Errorf("appNameFromPath(%q) = %q; want %q", tc.path, got, tc.want)
		}
	}
}
