package types

import (
	"math/big"
)

// OracleObservation is a per-pool TWAP checkpoint: the accumulator words
// seen at the last update plus the averages derived from the window that
// ended there. Averages are UQ112.112 words stored as decimal strings.
type OracleObservation struct {
	PoolId             uint64 `json:"pool_id"`
	WindowSeconds      uint32 `json:"window_seconds"`
	PriceACumulative   string `json:"price_a_cumulative"`
	PriceBCumulative   string `json:"price_b_cumulative"`
	BlockTimestampLast uint32 `json:"block_timestamp_last"`
	PriceAAverage      string `json:"price_a_average"`
	PriceBAverage      string `json:"price_b_average"`
	Updated            bool   `json:"updated"`
}

// NewOracleObservation seeds an observation from the pool's current
// accumulators. Averages stay zero until the first UpdateOracle.
func NewOracleObservation(pool Pool, window uint32, priceA, priceB *big.Int, timestamp uint32) OracleObservation {
	return OracleObservation{
		PoolId:             pool.Id,
		WindowSeconds:      window,
		PriceACumulative:   WrapCumulative(priceA).String(),
		PriceBCumulative:   WrapCumulative(priceB).String(),
		BlockTimestampLast: timestamp,
		PriceAAverage:      "0",
		PriceBAverage:      "0",
	}
}

// PriceACumulativeWord parses the checkpointed accumulator for token A.
func (o OracleObservation) PriceACumulativeWord() (*big.Int, error) {
	return parseCumulative(o.PriceACumulative)
}

// PriceBCumulativeWord parses the checkpointed accumulator for token B.
func (o OracleObservation) PriceBCumulativeWord() (*big.Int, error) {
	return parseCumulative(o.PriceBCumulative)
}

// PriceAAverageWord parses the stored average price of token A.
func (o OracleObservation) PriceAAverageWord() (*big.Int, error) {
	return parseCumulative(o.PriceAAverage)
}

// PriceBAverageWord parses the stored average price of token B.
func (o OracleObservation) PriceBAverageWord() (*big.Int, error) {
	return parseCumulative(o.PriceBAverage)
}

// Checkpoint advances the observation to a new accumulator reading and
// records the averages over the elapsed window.
func (o *OracleObservation) Checkpoint(priceA, priceB, avgA, avgB *big.Int, timestamp uint32) {
	o.PriceACumulative = WrapCumulative(priceA).String()
	o.PriceBCumulative = WrapCumulative(priceB).String()
	o.PriceAAverage = avgA.String()
	o.PriceBAverage = avgB.String()
	o.BlockTimestampLast = timestamp
	o.Updated = true
}

// Validate checks structural integrity of a stored observation.
func (o OracleObservation) Validate() error {
	if o.WindowSeconds == 0 {
		return ErrInvalidInput.Wrapf("oracle for pool %d has a zero window", o.PoolId)
	}
	for _, s := range []string{o.PriceACumulative, o.PriceBCumulative, o.PriceAAverage, o.PriceBAverage} {
		if _, err := parseCumulative(s); err != nil {
			return err
		}
	}
	return nil
}
