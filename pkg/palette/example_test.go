package palette_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/tikzgrid/pkg/palette"
)

func ExampleSanitize() {
	entries := palette.Sanitize([]palette.Entry{
		{Name: " Sky ", RGB: "135, 206, 235"},
		{Name: "", RGB: "0,0,0"},
		{Name: "Broken", RGB: "12,34"},
	})
	fmt.Println(entries)
	// Output:
	// [{Sky 135,206,235}]
}

func ExampleMemoryStore() {
	ctx := context.Background()
	s := palette.NewMemoryStore(nil)

	_ = s.Save(ctx, []palette.Entry{{Name: "Ink", RGB: "20,20,20"}})
	p := palette.Palette(s.Load(ctx))

	name, ok := p.ColorName("20,20,20")
	fmt.Println(name, ok)
	// Output:
	// Ink true
}
