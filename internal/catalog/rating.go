package catalog

import (
	"hash/fnv"
	"math"
	"math/rand"
)

// DisplayRating derives the cosmetic star rating shown next to a product.
// It is a pure function of the product id: the same id always yields the same
// rating, between 3.5 and 5.0 in steps of 0.1.
func DisplayRating(productID string) float64 {
	h := fnv.New64a()
	h.Write([]byte(productID))

	r := rand.New(rand.NewSource(int64(h.Sum64())))
	rating := 3.5 + r.Float64()*1.5
	return math.Round(rating*10) / 10
}

// DisplayReviewCount derives the cosmetic review count the same way.
func DisplayReviewCount(productID string) int {
	h := fnv.New64a()
	h.Write([]byte(productID))
	h.Write([]byte("reviews"))

	r := rand.New(rand.NewSource(int64(h.Sum64())))
	return 5 + r.Intn(495)
}
