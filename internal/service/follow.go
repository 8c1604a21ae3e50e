package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/types"
)

// FollowService maintains directed user-to-user follow edges and the
// subscriptions view built on top of them.
type FollowService struct {
	db *gorm.DB
}

func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{db: db}
}

func (s *FollowService) Follow(ctx context.Context, userID, authorID uuid.UUID) error {
	if userID == authorID {
		return ErrSelfFollow
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("id = ?", authorID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check author: %w", err)
		}
		if count == 0 {
			return ErrUserNotFound
		}

		if err := tx.Model(&models.Follow{}).
			Where("user_id = ? AND author_id = ?", userID, authorID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check follow edge: %w", err)
		}
		if count > 0 {
			return ErrAlreadyFollowing
		}

		edge := models.Follow{UserID: userID, AuthorID: authorID}
		if err := tx.Create(&edge).Error; err != nil {
			return fmt.Errorf("failed to create follow edge: %w", err)
		}
		return nil
	})
}

func (s *FollowService) Unfollow(ctx context.Context, userID, authorID uuid.UUID) error {
	if userID == authorID {
		return ErrSelfFollow
	}
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete follow edge: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFollowing
	}
	return nil
}

// ListFollowed returns the deduplicated set of author ids the user
// follows.
func (s *FollowService) ListFollowed(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var authorIDs []uuid.UUID
	err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("user_id = ?", userID).
		Distinct().
		Pluck("author_id", &authorIDs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list followed authors: %w", err)
	}
	return authorIDs, nil
}

// Subscriptions returns the followed authors, paginated and ordered by
// username, each with their recipes (capped by recipesLimit when
// positive) and total recipe count.
func (s *FollowService) Subscriptions(ctx context.Context, userID uuid.UUID, page, limit, recipesLimit int) ([]types.FollowedAuthor, error) {
	authorIDs, err := s.ListFollowed(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(authorIDs) == 0 {
		return []types.FollowedAuthor{}, nil
	}

	if limit <= 0 {
		limit = 20
	}
	query := s.db.WithContext(ctx).
		Where("id IN ?", authorIDs).
		Order("username").
		Limit(limit)
	if page > 1 {
		query = query.Offset((page - 1) * limit)
	}

	var authors []models.User
	if err := query.Find(&authors).Error; err != nil {
		return nil, fmt.Errorf("failed to load authors: %w", err)
	}

	result := make([]types.FollowedAuthor, 0, len(authors))
	for _, author := range authors {
		entry := types.FollowedAuthor{
			ID:           author.ID,
			Email:        author.Email,
			Username:     author.Username,
			FirstName:    author.FirstName,
			LastName:     author.LastName,
			IsSubscribed: true,
			Recipes:      []types.RecipeShortView{},
		}

		recipeQuery := s.db.WithContext(ctx).
			Where("author_id = ?", author.ID).
			Order("created_at DESC")
		if recipesLimit > 0 {
			recipeQuery = recipeQuery.Limit(recipesLimit)
		}
		var recipes []models.Recipe
		if err := recipeQuery.Find(&recipes).Error; err != nil {
			return nil, fmt.Errorf("failed to load author recipes: %w", err)
		}
		for _, recipe := range recipes {
			entry.Recipes = append(entry.Recipes, types.RecipeShortView{
				ID:          recipe.ID,
				Name:        recipe.Name,
				Image:       recipe.Image,
				CookingTime: recipe.CookingTime,
			})
		}

		if err := s.db.WithContext(ctx).Model(&models.Recipe{}).
			Where("author_id = ?", author.ID).
			Count(&entry.RecipesCount).Error; err != nil {
			return nil, fmt.Errorf("failed to count author recipes: %w", err)
		}

		result = append(result, entry)
	}
	return result, nil
}
