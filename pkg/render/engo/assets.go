// pkg/render/engo/assets.go
package engo

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/EngoEngine/engo/common"
)

// shipSpriteCell is the cell size of the ship sprite sheet in pixels.
const shipSpriteCell = 32

// shipPattern is the built-in arrowhead drawn when no sprite sheet is
// available. The nose points up so a zero rotation matches a zero
// heading.
var shipPattern = [][]int{
	{0, 0, 0, 0, 0, 0, 0, 1, 1, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 1, 1, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0},
	{0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0},
	{0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0},
	{0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0},
	{0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0},
	{0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0},
	{0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0},
	{0, 1, 1, 1, 1, 0, 0, 1, 1, 0, 0, 1, 1, 1, 1, 0},
	{1, 1, 1, 0, 0, 0, 0, 1, 1, 0, 0, 0, 0, 1, 1, 1},
	{1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1},
}

// AssetManager resolves the scene's drawables
type AssetManager struct {
	shipSprite common.Drawable
}

// NewAssetManager creates a new asset manager
func NewAssetManager() *AssetManager {
	return &AssetManager{}
}

// LoadAssets resolves the ship drawable. A non-empty path names a
// sprite sheet of 32x32 cells already queued through engo.Files; when
// the sheet cannot be opened the built-in arrowhead sprite is used
// instead.
func (am *AssetManager) LoadAssets(spriteSheet string) error {
	if spriteSheet != "" {
		if sheet := common.NewSpritesheetFromFile(spriteSheet, shipSpriteCell, shipSpriteCell); sheet != nil {
			am.shipSprite = sheet.Cell(0)
			return nil
		}
	}

	img := buildShipImage(shipPattern)
	am.shipSprite = common.NewTextureSingle(common.NewImageObject(img))
	return nil
}

// ShipSprite returns the drawable for the ship
func (am *AssetManager) ShipSprite() common.Drawable {
	return am.shipSprite
}

// buildShipImage rasterizes a pixel pattern onto a transparent image
func buildShipImage(pattern [][]int) *image.NRGBA {
	height := len(pattern)
	width := 0
	if height > 0 {
		width = len(pattern[0])
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.NRGBA{0, 0, 0, 0}}, image.Point{}, draw.Src)

	for y, row := range pattern {
		for x, pixel := range row {
			if pixel == 1 {
				img.Set(x, y, color.NRGBA{255, 255, 255, 255})
			}
		}
	}

	return img
}
