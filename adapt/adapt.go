package adapt

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
)

// AdapterNamespace is the import namespace handled by the compatibility
// adapter. Imports already bound to it are left alone; every other import
// is renamed into it.
const AdapterNamespace = "wasi_snapshot_preview1"

// adapterBytes is the fixed adapter binary packaged into every component
// artifact.
//
//go:embed adapter.wasm
var adapterBytes []byte

// ErrComponentInput rejects inputs that are already assembled components.
var ErrComponentInput = errors.New("adaptation only supports core wasm modules, not components")

var wasmMagic = []byte{0x00, 0x61, 0x73, 0x6d}

// Preamble version/layer fields. Core modules carry version 1 at layer 0;
// components carry layer 1.
var (
	coreVersion      = []byte{0x01, 0x00, 0x00, 0x00}
	componentVersion = []byte{0x0d, 0x00, 0x01, 0x00}
)

const (
	coreModuleSectionID = 0x01 // core-module section of a component
	importSectionID     = 0x02 // import section of a core module
)

// IsComponent reports whether the binary carries the component layer in
// its preamble.
func IsComponent(module []byte) bool {
	return len(module) >= 8 &&
		bytes.Equal(module[:4], wasmMagic) &&
		module[6] == 0x01 && module[7] == 0x00
}

// Adapt transforms a core wasm module into a component artifact: imports
// are mangled under the adapter namespace, and the mangled module is
// encoded together with the embedded adapter binary.
func Adapt(module []byte) ([]byte, error) {
	mangled, err := MangleImports(module)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(mangled)+len(adapterBytes)+16)
	out = append(out, wasmMagic...)
	out = append(out, componentVersion...)
	out = appendSection(out, coreModuleSectionID, adapterBytes)
	out = appendSection(out, coreModuleSectionID, mangled)
	return out, nil
}

// MangleImports rewrites the module's import section: imports already in
// the adapter namespace pass through untouched; every other import is
// rebound as AdapterNamespace / "<module>#<name>". All other sections are
// copied through byte-for-byte.
func MangleImports(module []byte) ([]byte, error) {
	if len(module) < 8 || !bytes.Equal(module[:4], wasmMagic) {
		return nil, errors.New("input is not a wasm binary")
	}
	if IsComponent(module) {
		return nil, ErrComponentInput
	}
	if !bytes.Equal(module[4:8], coreVersion) {
		return nil, fmt.Errorf("unsupported wasm version %x", module[4:8])
	}

	out := append([]byte(nil), module[:8]...)
	r := &reader{buf: module, off: 8}
	for r.remaining() > 0 {
		id := r.byte()
		contents := r.bytes(int(r.uvarint()))
		if r.err != nil {
			return nil, fmt.Errorf("malformed module section: %w", r.err)
		}
		if id == importSectionID {
			mangled, err := mangleImportSection(contents)
			if err != nil {
				return nil, err
			}
			contents = mangled
		}
		out = appendSection(out, id, contents)
	}
	return out, nil
}

func mangleImportSection(src []byte) ([]byte, error) {
	r := &reader{buf: src}
	count := r.uvarint()

	var out []byte
	out = appendUvarint(out, count)
	for i := uint64(0); i < count && r.err == nil; i++ {
		module := r.name()
		name := r.name()

		// The descriptor is copied through verbatim; it only needs to be
		// walked to find where it ends.
		descStart := r.off
		if err := r.skipImportDesc(); err != nil {
			return nil, fmt.Errorf("import %s:%s: %w", module, name, err)
		}
		desc := src[descStart:r.off]

		if module != AdapterNamespace {
			name = module + "#" + name
			module = AdapterNamespace
		}
		out = appendName(out, module)
		out = appendName(out, name)
		out = append(out, desc...)
	}
	if r.err != nil {
		return nil, fmt.Errorf("malformed import section: %w", r.err)
	}
	return out, nil
}

func appendSection(dst []byte, id byte, contents []byte) []byte {
	dst = append(dst, id)
	dst = appendUvarint(dst, uint64(len(contents)))
	return append(dst, contents...)
}

func appendName(dst []byte, name string) []byte {
	dst = appendUvarint(dst, uint64(len(name)))
	return append(dst, name...)
}
