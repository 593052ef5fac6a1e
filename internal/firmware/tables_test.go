package firmware

import (
	"testing"

	"github.com/markusressel/hpfan/internal/testingutils"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Buffer (7) { a byte sequence that looks like Method (GFSD, 0) }
func fakeMethodBuffer() []byte {
	content := append(testingutils.Byte(0x07), amlMethodOp, 0x06, 'G', 'F', 'S', 'D', 0x00)
	return append(append([]byte{amlBufferOp}, testingutils.PkgLength(len(content))...), content...)
}

func createDsdt() []byte {
	return testingutils.CreateTable(
		testingutils.Scope(`\_TZ`,
			testingutils.Method("GFVE", 1, testingutils.Return(testingutils.Byte(0x14))),
			testingutils.Name("FR2C", testingutils.Byte(0x1E)),
			testingutils.Method("GFSD", 0, testingutils.Return(testingutils.Byte(0x30))),
		),
		testingutils.Scope(`\_SB`,
			testingutils.Device("PCI0",
				testingutils.Method("GFRM", 0),
				testingutils.Device("LPCB",
					testingutils.Device("EC0",
						testingutils.Name("MFAC", testingutils.Byte(amlMethodOp)),
						testingutils.Name("BUF0", fakeMethodBuffer()),
						testingutils.Field("ERAM", "FAN1"),
						testingutils.Device("FAN0",
							testingutils.Method("^SFSD", 1),
						),
					),
				),
			),
		),
	)
}

func createSsdt() []byte {
	return testingutils.CreateTable(
		testingutils.External(`\_SB.PCI0.LPCB.EC0.KRFS`),
		testingutils.Scope(`\_SB.PCI0.LPCB.EC0`,
			testingutils.Method("KGFS", 0, testingutils.Return(testingutils.Byte(0x14))),
		),
	)
}

func createTablesFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/tables/DSDT", createDsdt(), 0o400))
	require.NoError(t, afero.WriteFile(fs, "/tables/dynamic/SSDT1", createSsdt(), 0o400))
	require.NoError(t, afero.WriteFile(fs, "/tables/FACP", testingutils.CreateTable(testingutils.Method(`\_TZ.MRPM`, 0)), 0o400))
	return fs
}

func TestTableResolver_Lookup(t *testing.T) {
	// GIVEN
	resolver := NewTableResolver(createTablesFs(t), "/tables")

	testCases := []struct {
		name     string
		expected bool
	}{
		{MethodFanValueExtended, true},
		{ValueFan1, true},
		{MethodFanSpeedDecimal, true},
		// same segment name in another scope
		{MethodEcFanSpeedDecimal, false},
		{`\_SB.PCI0.GFRM`, true},
		{MethodFanRpm, false},
		{MethodEcFanSpeed, true},
		// declared External only
		{MethodEcRightFanSpeed, false},
		// defined through a parent prefix inside Device (FAN0)
		{MethodEcSetFanSpeedDecimal, true},
		{`\_SB.PCI0.LPCB.EC0.FAN0.SFSD`, false},
		{`\_SB.PCI0.LPCB.EC0.FAN0`, true},
		{`\_SB.PCI0.LPCB.EC0`, true},
		{ValueEcFanAlwaysOnAc, true},
		{`\_SB.PCI0.LPCB.EC0.FAN1`, true},
		// only DSDT and SSDT tables are scanned
		{ValueMaxRpm, false},
		{`_TZ.GFVE`, false},
		{`\GFVE`, false},
		{"", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// WHEN
			found, err := resolver.Lookup(tc.name)

			// THEN
			require.NoError(t, err)
			assert.Equal(t, tc.expected, found)
		})
	}
}

func TestTableResolver_SameSegmentInOtherScope(t *testing.T) {
	// GIVEN
	fs := afero.NewMemMapFs()
	dsdt := testingutils.CreateTable(
		testingutils.Scope(`\_TZ`, testingutils.Method("GFSD", 0)),
	)
	require.NoError(t, afero.WriteFile(fs, "/tables/DSDT", dsdt, 0o400))
	gateway := NewGateway(NewAcpiCall("", NewTableResolver(fs, "/tables")), false)

	// WHEN
	ecExists := gateway.Exists(MethodEcFanSpeedDecimal)
	tzExists := gateway.Exists(MethodFanSpeedDecimal)

	// THEN
	assert.False(t, ecExists)
	assert.True(t, tzExists)
	_, err := gateway.Call(MethodEcFanSpeedDecimal)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTableResolver_ParentPrefixBeyondRootIsIgnored(t *testing.T) {
	// GIVEN
	fs := afero.NewMemMapFs()
	dsdt := testingutils.CreateTable(
		testingutils.Scope(`\_TZ`, testingutils.Method("^^GFVE", 1)),
		testingutils.ThermalZone(`\_TZ.TZ01`, testingutils.Method("^GFRM", 0)),
	)
	require.NoError(t, afero.WriteFile(fs, "/tables/DSDT", dsdt, 0o400))
	resolver := NewTableResolver(fs, "/tables")

	// WHEN
	gfve, err := resolver.Lookup(`\GFVE`)
	require.NoError(t, err)
	gfrm, err := resolver.Lookup(MethodFanRpm)
	require.NoError(t, err)

	// THEN
	assert.False(t, gfve)
	assert.True(t, gfrm)
}

func TestTableResolver_LargePackages(t *testing.T) {
	// GIVEN
	var padding [][]byte
	for idx := 0; idx < 600; idx++ {
		padding = append(padding, testingutils.Name("PADX", testingutils.Byte(byte(idx))))
	}
	fs := afero.NewMemMapFs()
	dsdt := testingutils.CreateTable(
		testingutils.Scope(`\_TZ`, append(padding, testingutils.Method("GFRM", 0))...),
		testingutils.Scope(`\_TZ`, testingutils.Name("MRPM", testingutils.Byte(0x52))),
	)
	require.NoError(t, afero.WriteFile(fs, "/tables/DSDT", dsdt, 0o400))
	resolver := NewTableResolver(fs, "/tables")

	// WHEN
	gfrm, err := resolver.Lookup(MethodFanRpm)
	require.NoError(t, err)
	mrpm, err := resolver.Lookup(ValueMaxRpm)
	require.NoError(t, err)

	// THEN
	assert.True(t, gfrm)
	assert.True(t, mrpm)
}

func TestTableResolver_MissingTables(t *testing.T) {
	resolver := NewTableResolver(afero.NewMemMapFs(), "/tables")

	found, err := resolver.Lookup(MethodFanRpm)
	assert.Error(t, err)
	assert.False(t, found)
}

func TestTableResolver_WithGateway(t *testing.T) {
	gateway := NewGateway(NewAcpiCall("", NewTableResolver(createTablesFs(t), "/tables")), false)

	assert.True(t, gateway.Exists(ValueFan1))
	assert.False(t, gateway.Exists(MethodFanRpm))
}

func TestSplitNamePath(t *testing.T) {
	assert.Equal(t, []string{"_TZ_", "GFVE"}, splitNamePath(`\_TZ.GFVE`))
	assert.Equal(t, []string{"_SB_", "PCI0", "LPCB", "EC0_", "SFSD"}, splitNamePath(`\_SB.PCI0.LPCB.EC0.SFSD`))
	assert.Nil(t, splitNamePath(`\`))
	assert.Nil(t, splitNamePath(`_TZ.GFVE`))
	assert.Nil(t, splitNamePath(`\_TZ..GFVE`))
	assert.Nil(t, splitNamePath(`\_TZ.TOOLONG`))
}

func TestParseNameString(t *testing.T) {
	_, _, ok := parseNameString([]byte{'g', 'f', 'v', 'e'}, 0)
	assert.False(t, ok)

	_, _, ok = parseNameString([]byte{'1', 'A', 'B', 'C'}, 0)
	assert.False(t, ok)

	name, length, ok := parseNameString(testingutils.NameString(`^^EC0.GFSD`), 0)
	assert.True(t, ok)
	assert.Equal(t, 11, length)
	assert.Equal(t, 2, name.parents)
	assert.Equal(t, []string{"EC0_", "GFSD"}, name.segments)

	name, length, ok = parseNameString(testingutils.NameString(`\`), 0)
	assert.True(t, ok)
	assert.Equal(t, 2, length)
	assert.True(t, name.root)
	assert.Empty(t, name.segments)
}

func TestNamePath_Resolve(t *testing.T) {
	scope := []string{"_SB_", "PCI0", "LPCB", "EC0_"}

	path, ok := namePath{parents: 1, segments: []string{"GFSD"}}.resolve(scope)
	assert.True(t, ok)
	assert.Equal(t, []string{"_SB_", "PCI0", "LPCB", "GFSD"}, path)

	path, ok = namePath{root: true, segments: []string{"_TZ_", "GFSD"}}.resolve(scope)
	assert.True(t, ok)
	assert.Equal(t, []string{"_TZ_", "GFSD"}, path)

	_, ok = namePath{parents: 5, segments: []string{"GFSD"}}.resolve(scope)
	assert.False(t, ok)
	assert.Equal(t, []string{"_SB_", "PCI0", "LPCB", "EC0_"}, scope)
}

func TestDecodePkgLength(t *testing.T) {
	for _, contentLength := range []int{0, 10, 62, 63, 300, 4093, 5000} {
		encoded := testingutils.PkgLength(contentLength)
		length, size, ok := decodePkgLength(encoded, 0)
		assert.True(t, ok, contentLength)
		assert.Equal(t, len(encoded), size, contentLength)
		assert.Equal(t, contentLength+size, length, contentLength)
	}

	_, _, ok := decodePkgLength([]byte{0x70}, 0)
	assert.False(t, ok)
}
