package seed

import (
	"fmt"

	"inkwell/internal/middleware"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers        int
	PostsPerUser    int
	CommentsPerPost int
	ShouldClean     bool
}

// DefaultOptions returns a small dataset suitable for local development.
func DefaultOptions() Options {
	return Options{
		NumUsers:        10,
		PostsPerUser:    5,
		CommentsPerPost: 3,
	}
}

// Run populates the database with fake users, posts and comments.
// Every user is created with DefaultPassword so seeded accounts can be
// logged into directly.
func Run(db *gorm.DB, opts Options) error {
	if opts.ShouldClean {
		if err := Clean(db); err != nil {
			return err
		}
	}

	factory, err := NewFactory(db)
	if err != nil {
		return err
	}

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			return err
		}
		users = append(users, user)
	}

	var postCount, commentCount int
	for _, author := range users {
		for i := 0; i < opts.PostsPerUser; i++ {
			post, err := factory.CreatePost(author)
			if err != nil {
				return err
			}
			postCount++
			for j := 0; j < opts.CommentsPerPost; j++ {
				commenter := users[factory.rand.Intn(len(users))]
				if _, err := factory.CreateComment(commenter, post); err != nil {
					return err
				}
				commentCount++
			}
		}
	}

	middleware.Logger.Info("database seeded",
		"users", len(users),
		"posts", postCount,
		"comments", commentCount,
	)
	return nil
}

// Clean removes all seeded rows. Hard-deletes so re-seeding starts from
// an empty dataset rather than piling on top of soft-deleted rows.
func Clean(db *gorm.DB) error {
	for _, model := range []any{&models.Comment{}, &models.Post{}, &models.User{}} {
		if err := db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
			return fmt.Errorf("cleaning seed data: %w", err)
		}
	}
	return nil
}
