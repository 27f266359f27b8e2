// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/AccelByte/extend-virtual-pet/pkg/record"
)

// PetSource supplies the current pet records.
type PetSource interface {
	Pets() [record.PetCount]record.PetRecord
}

// PetCollector exports each pet's needs, level and coins at scrape time.
type PetCollector struct {
	source PetSource

	need  *prometheus.Desc
	level *prometheus.Desc
	coins *prometheus.Desc
}

// NewPetCollector returns a collector reading from source on every scrape.
func NewPetCollector(source PetSource) *PetCollector {
	return &PetCollector{
		source: source,
		need: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "pet", "need"),
			"Current value of a pet need (0-100)",
			[]string{"pet", "need"}, nil,
		),
		level: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "pet", "level"),
			"Current pet level",
			[]string{"pet"}, nil,
		),
		coins: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "pet", "coins"),
			"Current pet coin balance",
			[]string{"pet"}, nil,
		),
	}
}

func (c *PetCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.need
	ch <- c.level
	ch <- c.coins
}

func (c *PetCollector) Collect(ch chan<- prometheus.Metric) {
	pets := c.source.Pets()
	for i, p := range pets {
		id := record.PetIDs[i].String()
		for name, v := range map[string]int{
			"hunger":    p.Hunger,
			"happiness": p.Happiness,
			"sleep":     p.Sleep,
			"health":    p.Health,
		} {
			ch <- prometheus.MustNewConstMetric(c.need, prometheus.GaugeValue, float64(v), id, name)
		}
		ch <- prometheus.MustNewConstMetric(c.level, prometheus.GaugeValue, float64(p.Level), id)
		ch <- prometheus.MustNewConstMetric(c.coins, prometheus.GaugeValue, float64(p.Coins), id)
	}
}
