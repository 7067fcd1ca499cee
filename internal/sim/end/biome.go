package end

import "fmt"

// Biome codes are part of the external contract; never renumber them.
type Biome uint32

const (
	Default         Biome = 0
	TheEnd          Biome = 9
	SmallEndIslands Biome = 40
	EndMidlands     Biome = 41
	EndHighlands    Biome = 42
	EndBarrens      Biome = 43
)

// Biomes lists every biome a classification can produce, in code order.
func Biomes() []Biome {
	return []Biome{TheEnd, SmallEndIslands, EndMidlands, EndHighlands, EndBarrens}
}

func (b Biome) Code() uint32 { return uint32(b) }

func (b Biome) String() string {
	switch b {
	case Default:
		return "Default"
	case TheEnd:
		return "TheEnd"
	case SmallEndIslands:
		return "SmallEndIslands"
	case EndMidlands:
		return "EndMidlands"
	case EndHighlands:
		return "EndHighlands"
	case EndBarrens:
		return "EndBarrens"
	default:
		return fmt.Sprintf("Biome(%d)", uint32(b))
	}
}

func ParseBiome(name string) (Biome, error) {
	for _, b := range append([]Biome{Default}, Biomes()...) {
		if b.String() == name {
			return b, nil
		}
	}
	return Default, fmt.Errorf("unknown biome %q", name)
}

func (b Biome) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *Biome) UnmarshalText(text []byte) error {
	v, err := ParseBiome(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}
