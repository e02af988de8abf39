package media

import "testing"

func TestPublicIDFromURL(t *testing.T) {
	cases := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "versioned url with folder",
			url:  "https://res.cloudinary.com/demo/image/upload/v1712345678/campus/banner.png",
			want: "campus/banner",
		},
		{
			name: "no version segment",
			url:  "https://res.cloudinary.com/demo/image/upload/campus/banner.jpg",
			want: "campus/banner",
		},
		{
			name: "no folder",
			url:  "https://res.cloudinary.com/demo/image/upload/v1/banner.webp",
			want: "banner",
		},
		{
			name: "nested folders",
			url:  "https://res.cloudinary.com/demo/image/upload/v9/campus/events/2026/opening.jpg",
			want: "campus/events/2026/opening",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := PublicIDFromURL(tc.url)
			if err != nil {
				t.Fatalf("PublicIDFromURL(%q): %v", tc.url, err)
			}
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestPublicIDFromURL_Invalid(t *testing.T) {
	for _, url := range []string{
		"https://res.cloudinary.com/demo/image/other/banner.png",
		"https://res.cloudinary.com/demo/image/upload/",
		"https://res.cloudinary.com/demo/image/upload/v123",
	} {
		if _, err := PublicIDFromURL(url); err == nil {
			t.Fatalf("PublicIDFromURL(%q): expected error", url)
		}
	}
}

func TestSign_DeterministicAndSorted(t *testing.T) {
	s := NewCloudinaryStore(Config{APISecret: "shhh"})

	a := s.sign(map[string]string{"timestamp": "100", "folder": "campus"})
	b := s.sign(map[string]string{"folder": "campus", "timestamp": "100"})
	if a != b {
		t.Fatal("signature must not depend on map iteration order")
	}

	c := s.sign(map[string]string{"timestamp": "101", "folder": "campus"})
	if a == c {
		t.Fatal("different params must produce different signatures")
	}
}
