package generate

import (
	"bytes"
	"path/filepath"
	"strings"
)

// GeneratedHeader starts every file written by gemini.
const GeneratedHeader = "// Code generated by gemini. DO NOT EDIT."

const outputTag = "gemini_sync"

// copied from go/build's syslist
var knownOS = map[string]bool{
	"aix": true, "android": true, "darwin": true, "dragonfly": true,
	"freebsd": true, "hurd": true, "illumos": true, "ios": true,
	"js": true, "linux": true, "nacl": true, "netbsd": true,
	"openbsd": true, "plan9": true, "solaris": true, "wasip1": true,
	"windows": true, "zos": true,
}

var knownArch = map[string]bool{
	"386": true, "amd64": true, "amd64p32": true, "arm": true,
	"armbe": true, "arm64": true, "arm64be": true, "loong64": true,
	"mips": true, "mipsle": true, "mips64": true, "mips64le": true,
	"mips64p32": true, "mips64p32le": true, "ppc": true, "ppc64": true,
	"ppc64le": true, "riscv": true, "riscv64": true, "s390": true,
	"s390x": true, "sparc": true, "sparc64": true, "wasm": true,
}

// OutputName returns the path of the blocking variant generated from
// the go file at path. The _test suffix and any _GOOS/_GOARCH suffix
// stay last so the implicit file name constraints still apply:
//
//	fetch.go             -> fetch_gemini_sync.go
//	fetch_test.go        -> fetch_gemini_sync_test.go
//	fetch_linux_amd64.go -> fetch_gemini_sync_linux_amd64.go
func OutputName(path string) string {
	dir, base := filepath.Split(path)
	stem := strings.TrimSuffix(base, ".go")
	var test string
	if strings.HasSuffix(stem, "_test") {
		stem = strings.TrimSuffix(stem, "_test")
		test = "_test"
	}
	parts := strings.Split(stem, "_")
	keep := len(parts)
	n := len(parts)
	if n >= 3 && knownOS[parts[n-2]] && knownArch[parts[n-1]] {
		keep = n - 2
	} else if n >= 2 && (knownOS[parts[n-1]] || knownArch[parts[n-1]]) {
		keep = n - 1
	}
	name := strings.Join(parts[:keep], "_") + "_" + outputTag
	if keep < n {
		name += "_" + strings.Join(parts[keep:], "_")
	}
	return dir + name + test + ".go"
}

// IsOutputName reports whether path looks like a file named by OutputName.
func IsOutputName(path string) bool {
	base := strings.TrimSuffix(filepath.Base(path), ".go")
	return strings.HasSuffix(base, "_"+outputTag) ||
		strings.Contains(base, "_"+outputTag+"_")
}

// IsGenerated reports whether content was written by gemini.
func IsGenerated(content []byte) bool {
	return bytes.HasPrefix(content, []byte(GeneratedHeader))
}
