package release

import (
	"archive/tar"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meysam81/oneoffctl/internal/config"
	"github.com/meysam81/oneoffctl/internal/logger"
)

func TestMain(m *testing.M) {
	logger.UseTestMode()
	os.Exit(m.Run())
}

type entry struct {
	name string
	size int
}

func buildTar(t *testing.T, entries ...entry) []byte {
	t.Helper()
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	for _, e := range entries {
		require.NoError(t, tw.WriteHeader(&tar.Header{Name: e.name, Mode: 0o755, Size: int64(e.size), Typeflag: tar.TypeReg}))
		_, err := tw.Write(bytes.Repeat([]byte{'x'}, e.size))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	return buf.Bytes()
}

func gz(t *testing.T, raw []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(raw)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestScanTar(t *testing.T) {
	tests := []struct {
		name    string
		entries []entry
		want    uint64
	}{
		{"exact name", []entry{{"README.md", 900}, {"oneoff", 700}, {"LICENSE", 5000}}, 700},
		{"path suffix", []entry{{"dist/oneoff", 1234}, {"big.bin", 99999}}, 1234},
		{"largest fallback", []entry{{"a", 10}, {"b", 3000}, {"c", 20}}, 3000},
		{"similar name is not a match", []entry{{"oneoff.sig", 5}, {"notoneoff", 7}}, 7},
		{"empty archive", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScanTar(buildTar(t, tt.entries...), "oneoff"))
		})
	}
}

func TestScanTar_RawHeaders(t *testing.T) {
	header := func(name, size string) []byte {
		h := make([]byte, blockSize)
		copy(h, name)
		copy(h[sizeOffset:], size)
		return h
	}

	t.Run("unparsable size is zero", func(t *testing.T) {
		buf := append(header("junk", "zzzz\x00"), make([]byte, blockSize)...)
		assert.Zero(t, ScanTar(buf, "oneoff"))
	})

	t.Run("padded size field", func(t *testing.T) {
		buf := header("oneoff", "  0000001750 ")
		assert.EqualValues(t, 0o1750, ScanTar(buf, "oneoff"))
	})

	t.Run("missing terminator returns best candidate", func(t *testing.T) {
		buf := append(header("a", "00000000010\x00"), make([]byte, blockSize)...)
		buf = append(buf, header("b", "00000000004\x00")...)
		buf = append(buf, make([]byte, blockSize)...)
		assert.EqualValues(t, 8, ScanTar(buf, "oneoff"))
	})

	t.Run("truncated trailing header stops the scan", func(t *testing.T) {
		buf := append(header("a", "00000000003\x00"), make([]byte, blockSize)...)
		buf = append(buf, []byte("oneoff")...)
		assert.EqualValues(t, 3, ScanTar(buf, "oneoff"))
	})

	t.Run("size beyond buffer stops the scan", func(t *testing.T) {
		assert.EqualValues(t, 0o77777777777, ScanTar(header("huge", "77777777777\x00"), "oneoff"))
	})
}

func TestGunzip(t *testing.T) {
	raw := buildTar(t, entry{"oneoff", 42})
	out, err := Gunzip(gz(t, raw))
	require.NoError(t, err)
	assert.Equal(t, raw, out)

	_, err = Gunzip([]byte("definitely not gzip"))
	assert.Error(t, err)

	full := gz(t, raw)
	_, err = Gunzip(full[:len(full)/2])
	assert.Error(t, err, "truncated stream")
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "~1MB", FormatBytes(1_048_576))
	assert.Equal(t, "~1KB", FormatBytes(512))
	assert.Equal(t, "~0KB", FormatBytes(0))
	assert.Equal(t, "~0KB", FormatBytes(511))
	assert.Equal(t, "~1024KB", FormatBytes(1_048_575))
	assert.Equal(t, "~15MB", FormatBytes(15*mib+400*kib))
	assert.Equal(t, "~2MB", FormatBytes(mib+mib/2))
}

func TestMajorMinor(t *testing.T) {
	assert.Equal(t, "v1.0", MajorMinor("v1.0.2"))
	assert.Equal(t, "v2.13", MajorMinor("2.13.0-rc1"))
	assert.Equal(t, FallbackVersion, MajorMinor("latest"))
	assert.Equal(t, FallbackVersion, MajorMinor(""))
}

func TestFallback(t *testing.T) {
	assert.Equal(t, Data{
		Version:     "v1.0",
		FullVersion: "v1.0",
		BinarySize:  "~7MB",
		DownloadURL: "https://github.com/meysam81/oneoff/releases/latest/download/oneoff_linux_amd64.tar.gz",
	}, Fallback())
}

func TestInspector_BinarySize(t *testing.T) {
	archive := gz(t, buildTar(t, entry{"LICENSE", 100}, entry{"oneoff", 3 * kib}))
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/octet-stream", r.Header.Get("Accept"))
		assert.Equal(t, UserAgent, r.Header.Get("User-Agent"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		_, _ = w.Write(archive)
	}))
	defer srv.Close()

	in := NewInspector(srv.Client(), "oneoff", "secret")
	n, err := in.BinarySize(context.Background(), srv.URL+"/oneoff_linux_amd64.tar.gz")
	require.NoError(t, err)
	assert.EqualValues(t, 3*kib, n)
}

func TestInspector_DefaultBinaryName(t *testing.T) {
	archive := gz(t, buildTar(t, entry{"docs/big.pdf", 9 * kib}, entry{"dist/oneoff", 2 * kib}))
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(archive)
	}))
	defer srv.Close()

	in := NewInspector(srv.Client(), "", "")
	assert.Equal(t, defaultBinary, in.Binary)

	n, err := in.BinarySize(context.Background(), srv.URL+"/a.tar.gz")
	require.NoError(t, err)
	assert.EqualValues(t, 2*kib, n, "the named binary wins over a larger entry")
}

func TestInspector_Failures(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("not gzip at all"))
	}))
	defer srv.Close()

	in := NewInspector(srv.Client(), "oneoff", "")
	ctx := context.Background()

	_, err := in.BinarySize(ctx, srv.URL+"/missing")
	assert.ErrorContains(t, err, "404")

	_, err = in.BinarySize(ctx, srv.URL+"/garbage")
	assert.Error(t, err)

	_, err = in.BinarySize(ctx, strings.Replace(srv.URL, "https://", "http://", 1))
	assert.ErrorContains(t, err, "insecure URL")

	in.MaxBytes = 4
	_, err = in.BinarySize(ctx, srv.URL+"/garbage")
	assert.ErrorContains(t, err, "size limit")
}

// githubServer fakes the latest-release endpoint and the asset download.
func githubServer(t *testing.T, tag string, assets map[string][]byte, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	srv = httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/repos/meysam81/oneoff/releases/latest":
			if calls != nil {
				calls.Add(1)
			}
			list := make([]map[string]any, 0, len(assets))
			for name := range assets {
				list = append(list, map[string]any{
					"name":                 name,
					"browser_download_url": fmt.Sprintf("%s/download/%s", srv.URL, name),
				})
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{"tag_name": tag, "assets": list})
		case strings.HasPrefix(r.URL.Path, "/download/"):
			body, ok := assets[strings.TrimPrefix(r.URL.Path, "/download/")]
			if !ok {
				http.NotFound(w, r)
				return
			}
			_, _ = w.Write(body)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testReleaseConfig(srv *httptest.Server) config.ReleaseConfig {
	cfg := config.Default().Release
	cfg.APIBaseURL = srv.URL
	return cfg
}

func TestFetcher_Fetch(t *testing.T) {
	archive := gz(t, buildTar(t, entry{"oneoff", 15 * mib}))
	srv := githubServer(t, "v1.4.2", map[string][]byte{
		"oneoff_linux_amd64.tar.gz":  archive,
		"oneoff_darwin_arm64.tar.gz": []byte("unused"),
	}, nil)

	f, err := NewFetcher(testReleaseConfig(srv), srv.Client())
	require.NoError(t, err)

	got := f.Fetch(context.Background())
	assert.Equal(t, "v1.4", got.Version)
	assert.Equal(t, "v1.4.2", got.FullVersion)
	assert.Equal(t, "~15MB", got.BinarySize)
	assert.Equal(t, srv.URL+"/download/oneoff_linux_amd64.tar.gz", got.DownloadURL)
}

func TestFetcher_FallbackOnFailure(t *testing.T) {
	t.Run("asset missing", func(t *testing.T) {
		srv := githubServer(t, "v1.4.2", map[string][]byte{"other.zip": nil}, nil)
		f, err := NewFetcher(testReleaseConfig(srv), srv.Client())
		require.NoError(t, err)
		assert.Equal(t, Fallback(), f.Fetch(context.Background()))
	})

	t.Run("api unreachable", func(t *testing.T) {
		srv := githubServer(t, "", nil, nil)
		cfg := testReleaseConfig(srv)
		srv.Close()
		f, err := NewFetcher(cfg, srv.Client())
		require.NoError(t, err)
		assert.Equal(t, Fallback(), f.Fetch(context.Background()))
	})

	t.Run("corrupt archive", func(t *testing.T) {
		srv := githubServer(t, "v2.0.0", map[string][]byte{"oneoff_linux_amd64.tar.gz": []byte("nope")}, nil)
		f, err := NewFetcher(testReleaseConfig(srv), srv.Client())
		require.NoError(t, err)
		assert.Equal(t, Fallback(), f.Fetch(context.Background()))
	})
}

func TestProvider_ComputesOnce(t *testing.T) {
	var calls atomic.Int32
	archive := gz(t, buildTar(t, entry{"oneoff", 2 * kib}))
	srv := githubServer(t, "v3.1.0", map[string][]byte{"oneoff_linux_amd64.tar.gz": archive}, &calls)

	f, err := NewFetcher(testReleaseConfig(srv), srv.Client())
	require.NoError(t, err)
	p := NewProvider(f)

	first := p.Get(context.Background())
	for range 3 {
		assert.Equal(t, first, p.Get(context.Background()))
	}
	assert.Equal(t, "~2KB", first.BinarySize)
	assert.EqualValues(t, 1, calls.Load())
}
