package userservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Client клиент для работы с UserService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента UserService.
// С пустым baseURL клиент всегда отвечает ErrServiceDegraded.
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetUser получает профиль пользователя
func (c *Client) GetUser(ctx context.Context, userID string) (*User, error) {
	endpoint := fmt.Sprintf("%s/internal/users/%s", c.baseURL, url.PathEscape(userID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrUserNotFound
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	if user.ID == "" {
		user.ID = userID
	}

	return &user, nil
}

// GetCustomer профиль владельца бронирования с graceful degradation.
// Любая ошибка, включая отсутствие пользователя, возвращается как ErrServiceDegraded:
// бронирование уже существует и показывается хотя бы с ID клиента.
func (c *Client) GetCustomer(ctx context.Context, userID string) (*domain.Customer, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("%w: user service is not configured", ErrServiceDegraded)
	}

	user, err := c.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			c.log.Info("User %s not found in UserService", userID)
		} else {
			c.log.Error("UserService unavailable, applying graceful degradation for user_id=%s: %v", userID, err)
		}
		return nil, fmt.Errorf("%w: user_id=%s, error=%v", ErrServiceDegraded, userID, err)
	}

	return user.ToDomain(), nil
}
