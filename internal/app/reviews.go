package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"travelassist/internal/domain"
)

type ReviewService struct {
	reviews domain.ReviewRepository
	places  domain.PlaceRepository
}

func NewReviewService(reviews domain.ReviewRepository, places domain.PlaceRepository) *ReviewService {
	return &ReviewService{reviews: reviews, places: places}
}

// Create adds a review. One review per user per place; rating 1 to 5.
func (s *ReviewService) Create(ctx context.Context, userID, placeID int64, rating float64, comment *string) (domain.Review, error) {
	if rating < 1 || rating > 5 {
		return domain.Review{}, fmt.Errorf("rating must be between 1 and 5: %w", domain.ErrInvalid)
	}
	if _, err := s.places.GetPlace(ctx, placeID); err != nil {
		return domain.Review{}, err
	}

	rv, err := s.reviews.CreateReview(ctx, domain.Review{
		UserID:  userID,
		PlaceID: placeID,
		Rating:  rating,
		Comment: comment,
	})
	if err != nil {
		return domain.Review{}, err
	}
	s.refreshPlaceRating(ctx, placeID)
	return rv, nil
}

func (s *ReviewService) ListForPlace(ctx context.Context, placeID int64) ([]domain.Review, error) {
	if _, err := s.places.GetPlace(ctx, placeID); err != nil {
		return nil, err
	}
	return s.reviews.ListPlaceReviews(ctx, placeID)
}

func (s *ReviewService) ListForUser(ctx context.Context, userID int64) ([]domain.Review, error) {
	return s.reviews.ListUserReviews(ctx, userID)
}

// Update edits a review, author only.
func (s *ReviewService) Update(ctx context.Context, userID, reviewID int64, rating float64, comment *string) (domain.Review, error) {
	if rating < 1 || rating > 5 {
		return domain.Review{}, fmt.Errorf("rating must be between 1 and 5: %w", domain.ErrInvalid)
	}
	rv, err := s.reviews.GetReview(ctx, reviewID)
	if err != nil {
		return domain.Review{}, err
	}
	if rv.UserID != userID {
		return domain.Review{}, domain.ErrForbidden
	}

	rv.Rating = rating
	if comment != nil {
		rv.Comment = comment
	}
	if err := s.reviews.UpdateReview(ctx, rv); err != nil {
		return domain.Review{}, err
	}
	s.refreshPlaceRating(ctx, rv.PlaceID)
	return rv, nil
}

// Delete removes a review, author only.
func (s *ReviewService) Delete(ctx context.Context, userID, reviewID int64) error {
	rv, err := s.reviews.GetReview(ctx, reviewID)
	if err != nil {
		return err
	}
	if rv.UserID != userID {
		return domain.ErrForbidden
	}
	if err := s.reviews.DeleteReview(ctx, reviewID); err != nil {
		return err
	}
	s.refreshPlaceRating(ctx, rv.PlaceID)
	return nil
}

// MarkHelpful bumps the helpful counter and returns the new count.
func (s *ReviewService) MarkHelpful(ctx context.Context, reviewID int64) (int, error) {
	return s.reviews.IncrementHelpful(ctx, reviewID)
}

// refreshPlaceRating recomputes a place's rating as the mean of its
// reviews. With no reviews left the stored rating is kept.
func (s *ReviewService) refreshPlaceRating(ctx context.Context, placeID int64) {
	avg, count, err := s.reviews.AverageRating(ctx, placeID)
	if err != nil {
		log.Warn().Err(err).Int64("place_id", placeID).Msg("rating recompute failed")
		return
	}
	if count == 0 {
		return
	}
	if err := s.places.UpdatePlaceRating(ctx, placeID, avg); err != nil {
		log.Warn().Err(err).Int64("place_id", placeID).Msg("rating update failed")
	}
}
