package recommend_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/paddlespot/paddlespot/internal/recommend"
	"github.com/paddlespot/paddlespot/internal/spot"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		spot      spot.Spot
		preferred recommend.WaterType
		want      recommend.WaterType
	}{
		{"lake by name", spot.Spot{Name: "Lac Beauport"}, "", recommend.WaterLake},
		{"english lake", spot.Spot{Name: "Brome Lake"}, "", recommend.WaterLake},
		{"river by name", spot.Spot{Name: "Rivière Jacques-Cartier"}, "", recommend.WaterRiver},
		{"river by type", spot.Spot{Name: "Parc", Type: "River"}, "", recommend.WaterRiver},
		{"ocean by fleuve", spot.Spot{Name: "Quai", Description: "Sur le fleuve"}, "", recommend.WaterOcean},
		{"lake wins over river", spot.Spot{Name: "Rivière", Description: "Se jette dans le lac"}, "", recommend.WaterLake},
		{"river wins over sea", spot.Spot{Name: "Embouchure de la rivière", Description: "vers la mer"}, "", recommend.WaterRiver},
		{"no match defaults to lake", spot.Spot{Name: "Baie tranquille"}, "", recommend.WaterLake},
		{"preference overrides", spot.Spot{Name: "Lac Calme"}, recommend.WaterRiver, recommend.WaterRiver},
		{"calm preference is lake", spot.Spot{Name: "Bord de mer"}, recommend.WaterCalm, recommend.WaterLake},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, recommend.Classify(&tt.spot, tt.preferred))
		})
	}
}
