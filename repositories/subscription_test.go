package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"chat-hall/domain"
	"chat-hall/errors"
)

func Test_Save_And_Find_Subscription(t *testing.T) {
	req := require.New(t)
	repo := NewSubscriptionRepository(openTestDB(t))

	sub := domain.NewSubscription(1, 7)
	_, err := repo.Save(sub)
	req.NoError(err)

	found, err := repo.Find(1, 7)
	req.NoError(err)
	req.True(found.IsActive)
	req.Equal(sub.UserID, found.UserID)
	req.Equal(sub.ChatID, found.ChatID)

	_, err = repo.Find(2, 7)
	req.ErrorIs(err, errors.ErrNotFound)
}

func Test_FindActiveByChat_Skips_Inactive_Rows(t *testing.T) {
	req := require.New(t)
	repo := NewSubscriptionRepository(openTestDB(t))

	active := domain.NewSubscription(1, 7)
	_, err := repo.Save(active)
	req.NoError(err)

	inactive := domain.NewSubscription(2, 7)
	inactive.Deactivate(time.Now().UTC())
	_, err = repo.Save(inactive)
	req.NoError(err)

	// A row on another chat must not leak into the scan.
	_, err = repo.Save(domain.NewSubscription(1, 8))
	req.NoError(err)

	subs, err := repo.FindActiveByChat(7)
	req.NoError(err)
	req.Len(subs, 1)
	req.Equal(domain.UserID(1), subs[0].UserID)
}

func Test_FindActiveByUser(t *testing.T) {
	req := require.New(t)
	repo := NewSubscriptionRepository(openTestDB(t))

	_, err := repo.Save(domain.NewSubscription(3, 1))
	req.NoError(err)
	_, err = repo.Save(domain.NewSubscription(3, 2))
	req.NoError(err)

	gone := domain.NewSubscription(3, 4)
	gone.Deactivate(time.Now().UTC())
	_, err = repo.Save(gone)
	req.NoError(err)

	subs, err := repo.FindActiveByUser(3)
	req.NoError(err)
	req.Len(subs, 2)
}

func Test_DeleteByUser_Purges_Both_Key_Families(t *testing.T) {
	req := require.New(t)
	repo := NewSubscriptionRepository(openTestDB(t))

	_, err := repo.Save(domain.NewSubscription(5, 1))
	req.NoError(err)
	_, err = repo.Save(domain.NewSubscription(5, 2))
	req.NoError(err)
	_, err = repo.Save(domain.NewSubscription(6, 1))
	req.NoError(err)

	req.NoError(repo.DeleteByUser(5))

	_, err = repo.Find(5, 1)
	req.ErrorIs(err, errors.ErrNotFound)
	subs, err := repo.FindActiveByUser(5)
	req.NoError(err)
	req.Empty(subs)

	// The other user is untouched.
	_, err = repo.Find(6, 1)
	req.NoError(err)
}

func Test_DeleteByChat(t *testing.T) {
	req := require.New(t)
	repo := NewSubscriptionRepository(openTestDB(t))

	_, err := repo.Save(domain.NewSubscription(1, 9))
	req.NoError(err)
	_, err = repo.Save(domain.NewSubscription(2, 9))
	req.NoError(err)
	_, err = repo.Save(domain.NewSubscription(1, 10))
	req.NoError(err)

	req.NoError(repo.DeleteByChat(9))

	subs, err := repo.FindActiveByChat(9)
	req.NoError(err)
	req.Empty(subs)

	remaining, err := repo.FindActiveByUser(1)
	req.NoError(err)
	req.Len(remaining, 1)
	req.Equal(domain.ChatID(10), remaining[0].ChatID)
}
