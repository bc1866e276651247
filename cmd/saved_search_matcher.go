package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"turakBack/internal/models"
	"turakBack/internal/repositories"
	"turakBack/internal/services"
)

const (
	savedSearchInterval = 10 * time.Minute
	savedSearchTimeout  = 1 * time.Minute
)

// startSavedSearchMatcher periodically checks listings activated since the
// last run against all saved searches and notifies the owners of matches.
func startSavedSearchMatcher(ctx context.Context, listingRepo *repositories.ListingRepository, searchRepo *repositories.SavedSearchRepository, notification *services.NotificationService, infoLog, errorLog *log.Logger) {
	if listingRepo == nil || searchRepo == nil || notification == nil {
		return
	}

	go func() {
		ticker := time.NewTicker(savedSearchInterval)
		defer ticker.Stop()

		lastRun := time.Now()

		runOnce := func() {
			runCtx, cancel := context.WithTimeout(ctx, savedSearchTimeout)
			defer cancel()

			since := lastRun
			lastRun = time.Now()

			listings, err := listingRepo.GetActivatedSince(runCtx, since)
			if err != nil {
				if errorLog != nil {
					errorLog.Printf("saved search matcher: listings: %v", err)
				}
				return
			}
			if len(listings) == 0 {
				return
			}

			searches, err := searchRepo.GetAllSavedSearches(runCtx)
			if err != nil {
				if errorLog != nil {
					errorLog.Printf("saved search matcher: searches: %v", err)
				}
				return
			}

			notified := 0
			for _, search := range searches {
				for _, listing := range listings {
					// owners do not need alerts about their own listings
					if listing.UserID == search.UserID {
						continue
					}
					if !repositories.MatchesFilter(listing, search.Filter) {
						continue
					}
					_, err := notification.Notify(runCtx, models.Notification{
						UserID: search.UserID,
						Type:   models.NotificationTypeSearch,
						Title:  fmt.Sprintf("New listing for %q", search.Name),
						Body:   fmt.Sprintf("%s, %.0f per night.", listing.Title, listing.Price),
						Link:   fmt.Sprintf("/listings/%d", listing.ID),
					})
					if err != nil && errorLog != nil {
						errorLog.Printf("saved search matcher: notify user %d: %v", search.UserID, err)
						continue
					}
					notified++
				}
			}
			if notified > 0 && infoLog != nil {
				infoLog.Printf("saved search matcher: sent %d notifications for %d new listings", notified, len(listings))
			}
		}

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				runOnce()
			}
		}
	}()
}
