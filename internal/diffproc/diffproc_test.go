package diffproc

import "testing"

func TestProcessKeepsChangeLines(t *testing.T) {
	diff := "<FILE> src / main . py <nl> " +
		"index 0000000 . . 3f26e45 <nl> " +
		"unchanged line of context <nl> " +
		"- version = ' 2 . 0 . 2 ' <nl> " +
		"+ version = ' 2 . 0 . 3 ' <nl>"
	got := Process(diff)
	want := `src / main . py \n - version = ' 2 . 0 . 2 ' \n + version = ' 2 . 0 . 3 ' \n`
	if got != want {
		t.Fatalf("processed diff:\ngot  %q\nwant %q", got, want)
	}
}

func TestProcessFileLifecycleMarkers(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			"new file",
			"new file mode 100644",
			`new file mode 100644 \n`,
		},
		{
			"deleted file drops mode",
			"deleted file mode 100644",
			`deleted file \n`,
		},
		{
			"rename pair",
			"rename from a / b . txt <nl> rename to c / d . txt",
			`rename from a / b . txt \n rename to c / d . txt \n`,
		},
		{
			"binary files",
			"Binary files a / x . exe and / dev / null differ",
			`Binary files a / x . exe and / dev / null differ \n`,
		},
		{
			"similarity index dropped",
			"similarity index 100 %",
			"",
		},
		{
			"empty diff",
			"",
			"",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Process(tc.in); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}
