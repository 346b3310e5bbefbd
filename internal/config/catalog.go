package config

type Catalog struct {
	// File is a YAML catalog seed. Empty loads the embedded seed.
	File string `env:"CATALOG_FILE"`
}

type Cart struct {
	// RecomputeMergedTotal recomputes a line total when more of an already
	// added product is added. Off keeps the line total from the first add.
	RecomputeMergedTotal bool `env:"CART_RECOMPUTE_MERGED_TOTAL" envDefault:"false"`
}
