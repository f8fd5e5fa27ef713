package order

import (
	"marketplace/internal/core/domain/model/courier"
	"marketplace/internal/pkg/errs"
)

// validateRating checks a client rating against the courier reputation bounds.
func validateRating(rating int) error {
	if rating < courier.RatingMin || rating > courier.RatingMax {
		return errs.NewValueIsOutOfRangeError("rating", rating, courier.RatingMin, courier.RatingMax)
	}
	return nil
}
