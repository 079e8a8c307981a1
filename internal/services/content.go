package services

import (
	"errors"
	"fmt"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// ContentService owns posts and comments. Post titles are globally unique;
// every comment belongs to an existing post and an existing user.
type ContentService struct {
	db *gorm.DB
}

func NewContentService(db *gorm.DB) *ContentService {
	return &ContentService{db: db}
}

// CreatePost stores a new post for authorID. The title must be unique; the
// pre-check and insert share a transaction and the unique index on posts.title
// catches anything that slips past it.
func (s *ContentService) CreatePost(title, subtitle, body, imageURL string, authorID uint) (*models.Post, error) {
	post := models.Post{
		Title:    title,
		Subtitle: subtitle,
		Body:     body,
		ImageURL: imageURL,
		UserID:   authorID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Post{}).Where("title = ?", title).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateTitle
		}
		return tx.Create(&post).Error
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateTitle) || errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateTitle
		}
		return nil, fmt.Errorf("creating post: %w", err)
	}

	return &post, nil
}

// UpdatePost overwrites title/subtitle/body/image and re-stamps the author to
// the editor. That re-stamp mirrors the editing flow's documented behavior;
// whether a given editor may get here at all is the authorization guard's
// problem, not this method's. CreatedAt is never touched.
func (s *ContentService) UpdatePost(postID uint, title, subtitle, body, imageURL string, editorID uint) (*models.Post, error) {
	var post models.Post
	if err := s.db.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("looking up post: %w", err)
	}

	post.Title = title
	post.Subtitle = subtitle
	post.Body = body
	post.ImageURL = imageURL
	post.UserID = editorID

	if err := s.db.Save(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateTitle
		}
		return nil, fmt.Errorf("updating post: %w", err)
	}

	return &post, nil
}

// DeletePost removes a post and all of its comments in one transaction, so no
// comment is ever left referencing a deleted post.
func (s *ContentService) DeletePost(postID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, postID).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("deleting post: %w", err)
	}
	return nil
}

func (s *ContentService) GetPost(postID uint) (*models.Post, error) {
	var post models.Post
	if err := s.db.Preload("User").First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("looking up post: %w", err)
	}
	return &post, nil
}

// ListPosts returns all posts in ascending id order with authors preloaded
// and comment counts filled in.
func (s *ContentService) ListPosts() ([]models.Post, error) {
	var posts []models.Post
	if err := s.db.Preload("User").Order("id ASC").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	if err := s.fillCommentCounts(posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// AddComment appends a comment to an existing post. The post-exists check runs
// before any write; an anonymous author never gets this far (the guard denies
// it), so authorID is always a real user.
func (s *ContentService) AddComment(postID, authorID uint, body string) (*models.Comment, error) {
	comment := models.Comment{
		PostID: postID,
		UserID: authorID,
		Body:   body,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Post{}).Where("id = ?", postID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		return tx.Create(&comment).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("creating comment: %w", err)
	}

	return &comment, nil
}

// ListComments returns a post's comments in ascending id order (insertion
// order) with authors preloaded.
func (s *ContentService) ListComments(postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	if err := s.db.Preload("User").Where("post_id = ?", postID).Order("id ASC").Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	return comments, nil
}

// fillCommentCounts batch-fills CommentCount for a page of posts.
func (s *ContentService) fillCommentCounts(posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	type countResult struct {
		PostID uint
		Count  int
	}
	var results []countResult
	err := s.db.Model(&models.Comment{}).
		Select("post_id, COUNT(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&results).Error
	if err != nil {
		return fmt.Errorf("counting comments: %w", err)
	}

	countMap := make(map[uint]int, len(results))
	for _, r := range results {
		countMap[r.PostID] = r.Count
	}
	for i := range posts {
		posts[i].CommentCount = countMap[posts[i].ID]
	}
	return nil
}
