package gyms

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testGyms = `
[gyms."Boulder Haus"]
sheet_id = "sheet-123"
sheet_tab_id = 42
font_size = 12
form_id = "form-abc"

[gyms."Boulder Haus".diagram]
width = 4
height = 3
margin = 0.25
x_limits = [-1, 5]
y_limits = [-1, 4]
background = "walls/boulder_haus.png"

[gyms."Boulder Haus".sections.A]
walls = [[0, 0], [1, 1]]

[gyms."Boulder Haus".sections.B]
walls = [[3, 2]]

[gyms."Kletterhalle Nord"]
sheet_id = "sheet-456"

[gyms."Kletterhalle Nord".sections.Cave]
walls = [[2, 3], [6, 7]]
`

func TestParse(t *testing.T) {
	r, err := Parse([]byte(testGyms))
	require.NoError(t, err)

	g, err := r.Gym("Boulder Haus")
	require.NoError(t, err)
	assert.Equal(t, "Boulder Haus", g.Name)
	assert.Equal(t, "sheet-123", g.SheetID)
	assert.Equal(t, int64(42), g.SheetTabID)
	assert.Equal(t, 12.0, g.FontSize)
	assert.Equal(t, "form-abc", g.FormID)
	assert.Equal(t, []Point{{0, 0}, {1, 1}}, g.Sections["A"].Walls)
	assert.Equal(t, Point{3, 2}, g.Sections["B"].Walls[0])
	assert.Equal(t, [2]float64{-1, 5}, g.Diagram.XLimits)
	assert.Equal(t, "walls/boulder_haus.png", g.Diagram.Background)

	assert.Equal(t, []string{"Boulder Haus", "Kletterhalle Nord"}, r.Names())
}

func TestDefaults(t *testing.T) {
	r, err := Parse([]byte(testGyms))
	require.NoError(t, err)

	g, err := r.Gym("Kletterhalle Nord")
	require.NoError(t, err)
	assert.Equal(t, 10.0, g.FontSize)
	assert.Equal(t, 8.0, g.Diagram.Width)
	assert.Equal(t, 6.0, g.Diagram.Height)
	assert.Equal(t, [2]float64{1, 7}, g.Diagram.XLimits)
	assert.Equal(t, [2]float64{2, 8}, g.Diagram.YLimits)
}

func TestUnknownGym(t *testing.T) {
	r := NewRegistry(nil)
	_, err := r.Gym("Nowhere")
	if !errors.Is(err, ErrUnknownGym) {
		t.Errorf("Gym(Nowhere) error = %v, want ErrUnknownGym", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gyms.toml")
	require.NoError(t, os.WriteFile(path, []byte(testGyms), 0644))

	r, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, r.Filename)
	assert.Len(t, r.Names(), 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.True(t, os.IsNotExist(err))
}
