package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"velora_storefront/internal/models"
)

// Client talks to the commerce backend's Storefront GraphQL API. It is the
// only place raw API shapes are visible; everything it returns is normalized
// into internal/models.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
}

// New builds a client for the given shop domain and static storefront token.
func New(domain, token string) *Client {
	return &Client{
		endpoint: "https://" + domain + "/api/2024-07/graphql.json",
		token:    token,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
}

// NewFromEnv reads SHOPIFY_STORE_DOMAIN and SHOPIFY_STOREFRONT_TOKEN.
func NewFromEnv() (*Client, error) {
	domain := os.Getenv("SHOPIFY_STORE_DOMAIN")
	token := os.Getenv("SHOPIFY_STOREFRONT_TOKEN")
	if domain == "" || token == "" {
		return nil, fmt.Errorf("SHOPIFY_STORE_DOMAIN / SHOPIFY_STOREFRONT_TOKEN not set")
	}
	return New(domain, token), nil
}

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type userError struct {
	Message string `json:"message"`
}

// do posts one GraphQL operation and decodes data into out.
func (c *Client) do(ctx context.Context, query string, variables map[string]interface{}, out interface{}) error {
	body, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Storefront-Access-Token", c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("storefront request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("storefront request: unexpected status %d", resp.StatusCode)
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []graphqlError  `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("storefront response: %w", err)
	}
	if len(envelope.Errors) > 0 {
		return fmt.Errorf("storefront query failed: %s", envelope.Errors[0].Message)
	}
	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("storefront response: %w", err)
		}
	}
	return nil
}

const cartCreateMutation = `
mutation cartCreate {
  cartCreate {
    cart { id checkoutUrl }
    userErrors { message }
  }
}`

// CreateCart creates a new checkout cart and returns its id and hosted
// checkout URL.
func (c *Client) CreateCart(ctx context.Context) (models.CheckoutCart, error) {
	var data struct {
		CartCreate struct {
			Cart struct {
				ID          string `json:"id"`
				CheckoutURL string `json:"checkoutUrl"`
			} `json:"cart"`
			UserErrors []userError `json:"userErrors"`
		} `json:"cartCreate"`
	}
	if err := c.do(ctx, cartCreateMutation, nil, &data); err != nil {
		return models.CheckoutCart{}, err
	}
	if len(data.CartCreate.UserErrors) > 0 {
		return models.CheckoutCart{}, fmt.Errorf("cartCreate: %s", data.CartCreate.UserErrors[0].Message)
	}
	return models.CheckoutCart{
		ID:          data.CartCreate.Cart.ID,
		CheckoutURL: data.CartCreate.Cart.CheckoutURL,
	}, nil
}

const cartLinesAddMutation = `
mutation cartLinesAdd($cartId: ID!, $lines: [CartLineInput!]!) {
  cartLinesAdd(cartId: $cartId, lines: $lines) {
    cart { id }
    userErrors { message }
  }
}`

// AddLines adds one variant line to an existing checkout cart.
func (c *Client) AddLines(ctx context.Context, cartID, variantID string, quantity int) error {
	var data struct {
		CartLinesAdd struct {
			UserErrors []userError `json:"userErrors"`
		} `json:"cartLinesAdd"`
	}
	vars := map[string]interface{}{
		"cartId": cartID,
		"lines": []map[string]interface{}{
			{"merchandiseId": variantID, "quantity": quantity},
		},
	}
	if err := c.do(ctx, cartLinesAddMutation, vars, &data); err != nil {
		return err
	}
	if len(data.CartLinesAdd.UserErrors) > 0 {
		return fmt.Errorf("cartLinesAdd: %s", data.CartLinesAdd.UserErrors[0].Message)
	}
	return nil
}

const productQuery = `
query product($id: ID!) {
  product(id: $id) {
    id
    title
    featuredImage { url }
    variants(first: 100) {
      edges {
        node {
          id
          title
          image { url }
          price { amount }
          selectedOptions { name value }
        }
      }
    }
  }
}`

// Product fetches one product with all of its variants, normalized.
func (c *Client) Product(ctx context.Context, id string) (models.Product, error) {
	var data struct {
		Product *struct {
			ID            string `json:"id"`
			Title         string `json:"title"`
			FeaturedImage *struct {
				URL string `json:"url"`
			} `json:"featuredImage"`
			Variants struct {
				Edges []struct {
					Node struct {
						ID    string `json:"id"`
						Title string `json:"title"`
						Image *struct {
							URL string `json:"url"`
						} `json:"image"`
						Price struct {
							Amount string `json:"amount"`
						} `json:"price"`
						SelectedOptions []struct {
							Name  string `json:"name"`
							Value string `json:"value"`
						} `json:"selectedOptions"`
					} `json:"node"`
				} `json:"edges"`
			} `json:"variants"`
		} `json:"product"`
	}
	if err := c.do(ctx, productQuery, map[string]interface{}{"id": id}, &data); err != nil {
		return models.Product{}, err
	}
	if data.Product == nil {
		return models.Product{}, fmt.Errorf("product %s not found", id)
	}

	product := models.Product{
		ID:    data.Product.ID,
		Title: data.Product.Title,
	}
	if data.Product.FeaturedImage != nil {
		product.Image = data.Product.FeaturedImage.URL
	}
	for _, edge := range data.Product.Variants.Edges {
		node := edge.Node
		price, err := strconv.ParseFloat(node.Price.Amount, 64)
		if err != nil {
			return models.Product{}, fmt.Errorf("variant %s: bad price %q", node.ID, node.Price.Amount)
		}
		variant := models.Variant{
			ID:    node.ID,
			Title: node.Title,
			Price: price,
		}
		if node.Image != nil {
			variant.Image = node.Image.URL
		}
		for _, opt := range node.SelectedOptions {
			variant.Options = append(variant.Options, models.SelectedOption{Name: opt.Name, Value: opt.Value})
		}
		product.Variants = append(product.Variants, variant)
	}
	return product, nil
}
