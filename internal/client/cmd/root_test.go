package cmd

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"runtime"
	"strings"
	"testing"
)

func withTempHome(t *testing.T) func() {
	t.Helper()
	dir := t.TempDir()
	oldHOME, hadHOME := os.LookupEnv("HOME")
	oldUSERPROFILE, hadUSERPROFILE := os.LookupEnv("USERPROFILE")
	os.Setenv("HOME", dir)
	os.Setenv("USERPROFILE", dir)
	if runtime.GOOS == "windows" {
		os.Setenv("HOMEDRIVE", "")
		os.Setenv("HOMEPATH", "")
	}
	return func() {
		if hadHOME {
			os.Setenv("HOME", oldHOME)
		} else {
			os.Unsetenv("HOME")
		}
		if hadUSERPROFILE {
			os.Setenv("USERPROFILE", oldUSERPROFILE)
		} else {
			os.Unsetenv("USERPROFILE")
		}
	}
}

func TestRoot_Version(t *testing.T) {
	cleanup := withTempHome(t)
	defer cleanup()

	root := NewRootCmd("1.0.0", "2026-08-30")
	out := new(bytes.Buffer)
	root.SetOut(out)

	root.SetArgs([]string{"version"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "resumatch 1.0.0") {
		t.Fatalf("version output: %q", out.String())
	}
}

func TestRoot_ProtectedCommandsRequireLogin(t *testing.T) {
	cleanup := withTempHome(t)
	defer cleanup()

	for _, args := range [][]string{
		{"resumes", "list"},
		{"jobs", "list"},
		{"history"},
		{"dashboard"},
	} {
		root := NewRootCmd("dev", "unknown")
		root.SetOut(new(bytes.Buffer))
		root.SetErr(new(bytes.Buffer))
		root.SetArgs(args)
		err := root.Execute()
		if err == nil || !strings.Contains(err.Error(), "not logged in") {
			t.Fatalf("%v: expected login gate error, got %v", args, err)
		}
	}
}

func TestRoot_LogoutWithoutSession(t *testing.T) {
	cleanup := withTempHome(t)
	defer cleanup()

	root := NewRootCmd("dev", "unknown")
	root.SetOut(new(bytes.Buffer))
	root.SetArgs([]string{"auth", "logout"})
	if err := root.Execute(); err != nil {
		t.Fatalf("logout should be a safe no-op: %v", err)
	}
}

func TestRoot_ResumesListAgainstServer(t *testing.T) {
	cleanup := withTempHome(t)
	defer cleanup()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/auth/profile/":
			_, _ = w.Write([]byte(`{"id": "u1", "email": "a@b.c", "username": "alice"}`))
		case "/api/resumes/":
			_, _ = w.Write([]byte(`[{"id": 1, "original_filename": "cv.pdf", "file_type": "PDF", "uploaded_at": "2026-08-30T10:00:00Z"}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	// Seed a stored credential so bootstrap settles on Authenticated.
	if err := os.WriteFile(os.Getenv("HOME")+"/.resumatch_access_token", []byte("tok"), 0600); err != nil {
		t.Fatal(err)
	}

	root := NewRootCmd("dev", "unknown")
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetArgs([]string{"--server", srv.URL, "resumes", "list"})
	if err := root.Execute(); err != nil {
		t.Fatalf("resumes list: %v", err)
	}
	if !strings.Contains(out.String(), "cv.pdf") {
		t.Fatalf("output: %q", out.String())
	}
}
