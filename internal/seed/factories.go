// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the plaintext password every seeded user gets.
const DefaultPassword = "password123"

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
	// bcrypt of DefaultPassword, hashed once and shared across users
	passwordHash string
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) (*Factory, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing seed password: %w", err)
	}
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:           db,
		rand:         rand.New(rand.NewSource(time.Now().UnixNano())),
		passwordHash: string(hash),
	}, nil
}

// BuildUser constructs a user without persisting it.
func (f *Factory) BuildUser(overrides ...func(*models.User)) *models.User {
	first := gofakeit.FirstName()
	last := gofakeit.LastName()
	username := strings.ToLower(fmt.Sprintf("%s_%s%d", first, last, f.rand.Intn(1000)))
	user := &models.User{
		Username: username,
		Email:    fmt.Sprintf("%s@%s", username, gofakeit.DomainName()),
		FullName: first + " " + last,
		Password: f.passwordHash,
		Bio:      gofakeit.Sentence(8),
	}
	for _, override := range overrides {
		override(user)
	}
	return user
}

// CreateUser builds and persists a user.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := f.BuildUser(overrides...)
	if err := f.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("seeding user %q: %w", user.Username, err)
	}
	return user, nil
}

// BuildPost constructs a post for the given author without persisting it.
// Roughly half of the generated posts carry an image.
func (f *Factory) BuildPost(author *models.User, overrides ...func(*models.Post)) *models.Post {
	post := &models.Post{
		Title:      strings.TrimSuffix(gofakeit.Sentence(f.rand.Intn(6)+3), "."),
		Body:       gofakeit.Paragraph(f.rand.Intn(3)+1, 3, 8, "\n\n"),
		AuthorID:   author.ID,
		AuthorName: author.Username,
		CreatedAt:  f.pastTimestamp(90),
	}
	if f.rand.Intn(2) == 0 {
		id := gofakeit.UUID()
		post.ImageID = "seed-" + id
		post.ImageURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/600", id)
	}
	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePost builds and persists a post.
func (f *Factory) CreatePost(author *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := f.BuildPost(author, overrides...)
	if err := f.db.Create(post).Error; err != nil {
		return nil, fmt.Errorf("seeding post for %q: %w", author.Username, err)
	}
	return post, nil
}

// CreateComment persists a comment by the given author on the given post.
// The comment timestamp always lands after the post's.
func (f *Factory) CreateComment(author *models.User, post *models.Post, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		Body:       gofakeit.Sentence(f.rand.Intn(12) + 3),
		AuthorID:   author.ID,
		AuthorName: author.Username,
		PostID:     post.ID,
		CreatedAt:  f.timestampAfter(post.CreatedAt),
	}
	for _, override := range overrides {
		override(comment)
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, fmt.Errorf("seeding comment on post %d: %w", post.ID, err)
	}
	return comment, nil
}

// pastTimestamp returns a time up to maxDays in the past with sub-day jitter.
func (f *Factory) pastTimestamp(maxDays int) time.Time {
	back := time.Duration(f.rand.Intn(maxDays))*24*time.Hour +
		time.Duration(f.rand.Intn(24))*time.Hour +
		time.Duration(f.rand.Intn(60))*time.Minute
	return time.Now().Add(-back)
}

func (f *Factory) timestampAfter(t time.Time) time.Time {
	gap := time.Duration(f.rand.Intn(72))*time.Hour + time.Duration(f.rand.Intn(60))*time.Minute
	after := t.Add(gap)
	if now := time.Now(); after.After(now) {
		return now
	}
	return after
}
