package config

type Kafka struct {
	Addresses []string `env:"KAFKA_ADDRESSES" envSeparator:","`
	Group     string   `env:"KAFKA_GROUP" envDefault:"storefront"`
}

// Enabled reports whether cart events should be relayed to Kafka.
func (k Kafka) Enabled() bool {
	return len(k.Addresses) > 0
}
