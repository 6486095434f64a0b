package grooveshark

import (
	"context"
)

// UserService provides user account operations.
type UserService struct {
	client *Client
}

// Info returns the user logged into the current session.
//
// Requires a valid session ID.
func (u *UserService) Info(ctx context.Context) (*User, error) {
	var user User
	if err := u.client.call(ctx, "getUserInfo", Params{}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SubscriptionDetails returns the subscription of the logged-in user.
//
// Requires a valid session ID.
func (u *UserService) SubscriptionDetails(ctx context.Context) (*Subscription, error) {
	var sub Subscription
	if err := u.client.call(ctx, "getUserSubscriptionDetails", Params{}, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// IDFromUsername looks up a user ID by username.
func (u *UserService) IDFromUsername(ctx context.Context, username string) (ID, error) {
	var result struct {
		UserID ID `json:"UserID"`
	}
	if err := u.client.call(ctx, "getUserIDFromUsername", Params{"username": username}, &result); err != nil {
		return 0, err
	}
	return result.UserID, nil
}
