package store

import (
	"context"
	"fmt"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"velora_storefront/internal/models"
)

var Firestore *firestore.Client

// InitFirestore bootstraps the Firebase app and opens the Firestore client
// used as the signed-in session store.
func InitFirestore(ctx context.Context) error {
	projectID := os.Getenv("FIREBASE_PROJECT_ID")
	if projectID == "" {
		return fmt.Errorf("FIREBASE_PROJECT_ID not set")
	}

	var opts []option.ClientOption
	if creds := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); creds != "" {
		opts = append(opts, option.WithCredentialsFile(creds))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return fmt.Errorf("firebase app init: %w", err)
	}

	Firestore, err = app.Firestore(ctx)
	if err != nil {
		return fmt.Errorf("firestore client init: %w", err)
	}

	log.Println("✅ Firestore connected (project " + projectID + ")")
	return nil
}

// CloseFirestore closes the Firestore client.
func CloseFirestore() error {
	if Firestore != nil {
		return Firestore.Close()
	}
	return nil
}

// SessionStore holds the signed-in user's cart and wishlist documents:
// carts/{userId} and wishlists/{userId}, each with a single items field.
// All writes are merge-writes so other document fields stay untouched.
type SessionStore struct {
	client *firestore.Client
}

func NewSessionStore(client *firestore.Client) *SessionStore {
	return &SessionStore{client: client}
}

func (s *SessionStore) cartDoc(userID string) *firestore.DocumentRef {
	return s.client.Collection("carts").Doc(userID)
}

func (s *SessionStore) wishlistDoc(userID string) *firestore.DocumentRef {
	return s.client.Collection("wishlists").Doc(userID)
}

type cartDocument struct {
	Items []models.CartLineItem `firestore:"items"`
}

type wishlistDocument struct {
	Items []models.WishlistItem `firestore:"items"`
}

// CartItems point-reads the user's cart document. A missing document is an
// empty cart, not an error.
func (s *SessionStore) CartItems(ctx context.Context, userID string) ([]models.CartLineItem, error) {
	snap, err := s.cartDoc(userID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return []models.CartLineItem{}, nil
	}
	if err != nil {
		return nil, err
	}
	var doc cartDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, err
	}
	if doc.Items == nil {
		doc.Items = []models.CartLineItem{}
	}
	return doc.Items, nil
}

// SetCartItems merge-writes the items field of the user's cart document.
func (s *SessionStore) SetCartItems(ctx context.Context, userID string, items []models.CartLineItem) error {
	_, err := s.cartDoc(userID).Set(ctx, map[string]interface{}{
		"items": items,
	}, firestore.MergeAll)
	return err
}

// WishlistItems point-reads the user's wishlist document.
func (s *SessionStore) WishlistItems(ctx context.Context, userID string) ([]models.WishlistItem, error) {
	snap, err := s.wishlistDoc(userID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return []models.WishlistItem{}, nil
	}
	if err != nil {
		return nil, err
	}
	var doc wishlistDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, err
	}
	if doc.Items == nil {
		doc.Items = []models.WishlistItem{}
	}
	return doc.Items, nil
}

// SetWishlistItems merge-writes the items field of the user's wishlist document.
func (s *SessionStore) SetWishlistItems(ctx context.Context, userID string, items []models.WishlistItem) error {
	_, err := s.wishlistDoc(userID).Set(ctx, map[string]interface{}{
		"items": items,
	}, firestore.MergeAll)
	return err
}

// WatchCart subscribes to the user's cart document and delivers the item
// collection after every snapshot, including changes made from other devices.
// The subscription ends when ctx is cancelled; the channel closes afterwards.
func (s *SessionStore) WatchCart(ctx context.Context, userID string) <-chan []models.CartLineItem {
	out := make(chan []models.CartLineItem, 1)
	iter := s.cartDoc(userID).Snapshots(ctx)

	go func() {
		defer close(out)
		defer iter.Stop()
		for {
			snap, err := iter.Next()
			if err != nil {
				if ctx.Err() == nil {
					log.Printf("⚠️ Cart snapshot stream ended: %v", err)
				}
				return
			}
			items := []models.CartLineItem{}
			if snap.Exists() {
				var doc cartDocument
				if err := snap.DataTo(&doc); err != nil {
					log.Printf("⚠️ Cart snapshot decode failed: %v", err)
					continue
				}
				if doc.Items != nil {
					items = doc.Items
				}
			}
			select {
			case out <- items:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}
