package firmware

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"
)

const (
	// DefaultTablesPath is where Linux exposes the raw ACPI tables.
	DefaultTablesPath = "/sys/firmware/acpi/tables"

	sdtHeaderLength = 36

	amlZeroOp          = 0x00
	amlOneOp           = 0x01
	amlAliasOp         = 0x06
	amlNameOp          = 0x08
	amlBytePrefix      = 0x0A
	amlWordPrefix      = 0x0B
	amlDWordPrefix     = 0x0C
	amlStringPrefix    = 0x0D
	amlQWordPrefix     = 0x0E
	amlScopeOp         = 0x10
	amlBufferOp        = 0x11
	amlPackageOp       = 0x12
	amlVarPackageOp    = 0x13
	amlMethodOp        = 0x14
	amlExternalOp      = 0x15
	amlDualNamePrefix  = 0x2E
	amlMultiNamePrefix = 0x2F
	amlExtOpPrefix     = 0x5B
	amlRootChar        = '\\'
	amlParentPrefix    = '^'
	amlIfOp            = 0xA0
	amlElseOp          = 0xA1
	amlWhileOp         = 0xA2
	amlOnesOp          = 0xFF
	amlNullName        = 0x00

	// following amlExtOpPrefix
	amlRevisionOp     = 0x30
	amlFieldOp        = 0x81
	amlDeviceOp       = 0x82
	amlProcessorOp    = 0x83
	amlPowerResOp     = 0x84
	amlThermalZoneOp  = 0x85
	amlIndexFieldOp   = 0x86
	amlBankFieldOp    = 0x87
	amlReservedField  = 0x00
	amlAccessField    = 0x01
	amlExtAccessField = 0x03
)

// TableResolver finds named objects in the DSDT and SSDT tables without
// evaluating anything. Scope(), Device(), ThermalZone(), Processor() and
// PowerResource() nesting is followed so every definition is recorded with
// its absolute path, lookups must match that path exactly.
type TableResolver struct {
	fs   afero.Fs
	path string

	once        sync.Once
	definitions map[string]struct{}
	loadErr     error
}

func NewTableResolver(fs afero.Fs, path string) *TableResolver {
	if len(path) <= 0 {
		path = DefaultTablesPath
	}
	return &TableResolver{
		fs:   fs,
		path: path,
	}
}

// Lookup reports whether the absolute object path name (e.g. `\_TZ.GFVE`) is defined.
func (r *TableResolver) Lookup(name string) (bool, error) {
	r.once.Do(r.load)
	if r.loadErr != nil {
		return false, r.loadErr
	}

	target := splitNamePath(name)
	if len(target) == 0 {
		return false, nil
	}
	_, found := r.definitions[strings.Join(target, ".")]
	return found, nil
}

func (r *TableResolver) load() {
	r.definitions = map[string]struct{}{}

	files, err := r.tableFiles()
	if err != nil {
		r.loadErr = err
		return
	}
	if len(files) == 0 {
		r.loadErr = fmt.Errorf("no DSDT/SSDT tables found in %s", r.path)
		return
	}

	for _, file := range files {
		data, err := afero.ReadFile(r.fs, file)
		if err != nil {
			r.loadErr = fmt.Errorf("read acpi table %s: %w", file, err)
			return
		}
		if len(data) <= sdtHeaderLength {
			continue
		}
		scanner := &amlScanner{aml: data[sdtHeaderLength:], definitions: r.definitions}
		scanner.walk(0, len(scanner.aml), nil)
	}
}

func (r *TableResolver) tableFiles() ([]string, error) {
	var result []string
	for _, dir := range []string{r.path, filepath.Join(r.path, "dynamic")} {
		entries, err := afero.ReadDir(r.fs, dir)
		if err != nil {
			if dir == r.path {
				return nil, fmt.Errorf("read acpi tables: %w", err)
			}
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if strings.HasPrefix(entry.Name(), "DSDT") || strings.HasPrefix(entry.Name(), "SSDT") {
				result = append(result, filepath.Join(dir, entry.Name()))
			}
		}
	}
	return result, nil
}

// amlScanner walks a term list and records the absolute path of every
// named object it defines. Method bodies and data objects are skipped as a
// whole. Bytes of terms it does not understand are stepped over one at a
// time until a known term starts again.
type amlScanner struct {
	aml         []byte
	definitions map[string]struct{}
}

func (s *amlScanner) walk(start, end int, scope []string) {
	for i := start; i < end; {
		next, ok := s.term(i, end, scope)
		if ok && next > i {
			i = next
		} else {
			i++
		}
	}
}

// term handles the term starting at offset and returns the offset behind it
func (s *amlScanner) term(offset, end int, scope []string) (int, bool) {
	aml := s.aml
	switch aml[offset] {
	case amlScopeOp:
		return s.namespace(offset+1, end, scope, 0, false)
	case amlMethodOp:
		pkgEnd, body, ok := s.pkg(offset+1, end)
		if !ok {
			return 0, false
		}
		path, _, ok := s.name(body, pkgEnd, scope)
		if !ok {
			return 0, false
		}
		s.define(path)
		return pkgEnd, true
	case amlNameOp:
		path, next, ok := s.name(offset+1, end, scope)
		if !ok {
			return 0, false
		}
		s.define(path)
		return s.skipData(next, end), true
	case amlAliasOp:
		_, next, ok := s.name(offset+1, end, scope)
		if !ok {
			return 0, false
		}
		path, next, ok := s.name(next, end, scope)
		if !ok {
			return 0, false
		}
		s.define(path)
		return next, true
	case amlExternalOp:
		// declares an object defined elsewhere, ObjectType and ArgumentCount follow
		_, next, ok := s.name(offset+1, end, scope)
		if !ok || next+2 > end {
			return 0, false
		}
		return next + 2, true
	case amlBytePrefix, amlWordPrefix, amlDWordPrefix, amlQWordPrefix, amlStringPrefix,
		amlBufferOp, amlPackageOp, amlVarPackageOp:
		return s.skipData(offset, end), true
	case amlWhileOp:
		pkgEnd, _, ok := s.pkg(offset+1, end)
		return pkgEnd, ok
	case amlIfOp, amlElseOp:
		// module level conditionals are loaded into the enclosing scope
		pkgEnd, body, ok := s.pkg(offset+1, end)
		if !ok {
			return 0, false
		}
		s.walk(body, pkgEnd, scope)
		return pkgEnd, true
	case amlExtOpPrefix:
		if offset+1 >= end {
			return 0, false
		}
		return s.extTerm(offset+2, aml[offset+1], end, scope)
	}
	return 0, false
}

func (s *amlScanner) extTerm(offset int, op byte, end int, scope []string) (int, bool) {
	switch op {
	case amlDeviceOp, amlThermalZoneOp:
		return s.namespace(offset, end, scope, 0, true)
	case amlProcessorOp:
		// ProcID, PblkAddr and PblkLen precede the term list
		return s.namespace(offset, end, scope, 6, true)
	case amlPowerResOp:
		// SystemLevel and ResourceOrder precede the term list
		return s.namespace(offset, end, scope, 3, true)
	case amlFieldOp:
		pkgEnd, body, ok := s.pkg(offset, end)
		if !ok {
			return 0, false
		}
		if _, next, ok := s.name(body, pkgEnd, scope); ok {
			s.fieldList(next+1, pkgEnd, scope)
		}
		return pkgEnd, true
	case amlIndexFieldOp:
		pkgEnd, body, ok := s.pkg(offset, end)
		if !ok {
			return 0, false
		}
		if _, next, ok := s.name(body, pkgEnd, scope); ok {
			if _, next, ok = s.name(next, pkgEnd, scope); ok {
				s.fieldList(next+1, pkgEnd, scope)
			}
		}
		return pkgEnd, true
	case amlBankFieldOp:
		pkgEnd, _, ok := s.pkg(offset, end)
		return pkgEnd, ok
	}
	return 0, false
}

// namespace handles an object that opens a new scope. fixed is the number
// of bytes between its name and its term list.
func (s *amlScanner) namespace(offset, end int, scope []string, fixed int, define bool) (int, bool) {
	pkgEnd, body, ok := s.pkg(offset, end)
	if !ok {
		return 0, false
	}
	path, next, ok := s.name(body, pkgEnd, scope)
	if !ok || next+fixed > pkgEnd {
		return 0, false
	}
	if define {
		s.define(path)
	}
	s.walk(next+fixed, pkgEnd, path)
	return pkgEnd, true
}

// fieldList defines the named field units, they live in the scope of the Field() term.
func (s *amlScanner) fieldList(offset, end int, scope []string) {
	aml := s.aml
	for o := offset; o < end; {
		switch aml[o] {
		case amlReservedField:
			_, size, ok := decodePkgLength(aml, o+1)
			if !ok {
				return
			}
			o += 1 + size
		case amlAccessField:
			o += 3
		case amlExtAccessField:
			o += 4
		default:
			if o+4 > end || !isNameSegment(aml[o:o+4]) {
				return
			}
			s.define(append(append([]string{}, scope...), string(aml[o:o+4])))
			_, size, ok := decodePkgLength(aml, o+4)
			if !ok {
				return
			}
			o += 4 + size
		}
	}
}

// skipData returns the offset behind the data object at offset. Unknown
// encodings are left for walk to step over.
func (s *amlScanner) skipData(offset, end int) int {
	if offset >= end {
		return end
	}
	aml := s.aml
	next := offset
	switch aml[offset] {
	case amlZeroOp, amlOneOp, amlOnesOp:
		next = offset + 1
	case amlBytePrefix:
		next = offset + 2
	case amlWordPrefix:
		next = offset + 3
	case amlDWordPrefix:
		next = offset + 5
	case amlQWordPrefix:
		next = offset + 9
	case amlStringPrefix:
		next = offset + 1
		for next < end && aml[next] != 0x00 {
			next++
		}
		next++
	case amlBufferOp, amlPackageOp, amlVarPackageOp:
		if pkgEnd, _, ok := s.pkg(offset+1, end); ok {
			next = pkgEnd
		}
	case amlExtOpPrefix:
		if offset+1 < end && aml[offset+1] == amlRevisionOp {
			next = offset + 2
		}
	}
	if next > end {
		return end
	}
	return next
}

// pkg decodes the PkgLength at offset and returns where the package ends and
// where its content starts.
func (s *amlScanner) pkg(offset, end int) (pkgEnd int, body int, ok bool) {
	length, size, ok := decodePkgLength(s.aml, offset)
	if !ok || length < size || offset+length > end {
		return 0, 0, false
	}
	return offset + length, offset + size, true
}

func (s *amlScanner) name(offset, end int, scope []string) ([]string, int, bool) {
	if offset >= end {
		return nil, 0, false
	}
	name, length, ok := parseNameString(s.aml[:end], offset)
	if !ok {
		return nil, 0, false
	}
	path, ok := name.resolve(scope)
	if !ok {
		return nil, 0, false
	}
	return path, offset + length, true
}

func (s *amlScanner) define(path []string) {
	if len(path) == 0 {
		return
	}
	s.definitions[strings.Join(path, ".")] = struct{}{}
}

// namePath is a decoded AML NameString.
type namePath struct {
	root     bool
	parents  int
	segments []string
}

// resolve turns the name into an absolute path relative to scope.
func (n namePath) resolve(scope []string) ([]string, bool) {
	if n.root {
		return append([]string{}, n.segments...), true
	}
	if n.parents > len(scope) {
		return nil, false
	}
	base := scope[:len(scope)-n.parents]
	return append(append([]string{}, base...), n.segments...), true
}

func decodePkgLength(aml []byte, offset int) (length int, size int, ok bool) {
	if offset >= len(aml) {
		return 0, 0, false
	}
	lead := aml[offset]
	follow := int(lead >> 6)
	if follow == 0 {
		return int(lead & 0x3F), 1, true
	}
	if lead&0x30 != 0 || offset+follow >= len(aml) {
		return 0, 0, false
	}
	length = int(lead & 0x0F)
	for n := 0; n < follow; n++ {
		length |= int(aml[offset+1+n]) << (4 + 8*n)
	}
	return length, 1 + follow, true
}

// parseNameString decodes the NameString at offset and returns it together with its encoded length.
func parseNameString(aml []byte, offset int) (namePath, int, bool) {
	var name namePath
	start := offset
	if offset >= len(aml) {
		return name, 0, false
	}
	if aml[offset] == amlRootChar {
		name.root = true
		offset++
	} else {
		for offset < len(aml) && aml[offset] == amlParentPrefix {
			name.parents++
			offset++
		}
	}
	if offset >= len(aml) {
		return name, 0, false
	}

	count := 1
	switch aml[offset] {
	case amlNullName:
		return name, offset + 1 - start, true
	case amlDualNamePrefix:
		count = 2
		offset++
	case amlMultiNamePrefix:
		if offset+1 >= len(aml) {
			return name, 0, false
		}
		count = int(aml[offset+1])
		offset += 2
	}

	if count == 0 || offset+count*4 > len(aml) {
		return name, 0, false
	}

	name.segments = make([]string, 0, count)
	for n := 0; n < count; n++ {
		segment := aml[offset+n*4 : offset+n*4+4]
		if !isNameSegment(segment) {
			return name, 0, false
		}
		name.segments = append(name.segments, string(segment))
	}
	return name, offset + count*4 - start, true
}

func isNameSegment(segment []byte) bool {
	for idx, c := range segment {
		switch {
		case c >= 'A' && c <= 'Z', c == '_':
		case c >= '0' && c <= '9' && idx > 0:
		default:
			return false
		}
	}
	return true
}

// splitNamePath turns the absolute path `\_TZ.GFVE` into ["_TZ_", "GFVE"].
func splitNamePath(name string) []string {
	if !strings.HasPrefix(name, `\`) {
		return nil
	}
	name = strings.TrimPrefix(name, `\`)
	if len(name) == 0 {
		return nil
	}
	var result []string
	for _, segment := range strings.Split(name, ".") {
		segment = strings.ToUpper(segment)
		if len(segment) == 0 || len(segment) > 4 {
			return nil
		}
		result = append(result, segment+strings.Repeat("_", 4-len(segment)))
	}
	return result
}
