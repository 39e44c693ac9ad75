package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	apperrors "emotiguide/internal/errors"
	"emotiguide/internal/model"
	"emotiguide/internal/session"
)

func newRootCmd(open storeOpener, log *zap.SugaredLogger) *cobra.Command {
	var profile string
	rootCmd := &cobra.Command{
		Use:           "emotiguidectl",
		Short:         "Inspect and maintain persisted EmotiGuide sessions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&profile, "profile", "p", session.DefaultProfile, "Profile id")

	// withStore loads the profile's store and releases it after fn.
	withStore := func(cmd *cobra.Command, fn func(*session.Store) error) error {
		ctx := cmd.Context()
		backing, closeFn, err := open(ctx, log)
		if err != nil {
			return err
		}
		defer func() {
			if err := closeFn(); err != nil {
				log.Warnw("closing store failed", "error", err)
			}
		}()

		registry := session.NewRegistry(backing, session.Options{Logger: log})
		defer registry.Close()
		store, err := registry.Get(ctx, profile)
		if err != nil {
			return err
		}
		return fn(store)
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the current user, mood history and load warnings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(store *session.Store) error {
				return printJSON(cmd.OutOrStdout(), store.Snapshot())
			})
		},
	}

	var note string
	recordCmd := &cobra.Command{
		Use:   "record EMOTION CONFIDENCE",
		Short: "Append a mood reading for the current session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			emotion, ok := model.ParseEmotion(args[0])
			if !ok {
				return apperrors.NewValidationError("emotion", apperrors.ErrInvalidEmotion)
			}
			confidence, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return apperrors.NewValidationError("confidence", err)
			}
			return withStore(cmd, func(store *session.Store) error {
				entry, err := store.Record(cmd.Context(), session.Detection{
					Emotion:    emotion,
					Confidence: confidence,
					Note:       note,
				})
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), entry)
			})
		},
	}
	recordCmd.Flags().StringVarP(&note, "note", "n", "", "Optional note")

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Clear the current user, keeping the mood history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(store *session.Store) error {
				if err := store.Logout(cmd.Context()); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "logged out profile %s\n", store.Profile())
				return nil
			})
		},
	}

	var confirm bool
	purgeCmd := &cobra.Command{
		Use:   "purge-history",
		Short: "Delete the whole mood history of the profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm {
				return fmt.Errorf("refusing to purge without --yes")
			}
			return withStore(cmd, func(store *session.Store) error {
				removed := len(store.History())
				if err := store.PurgeHistory(cmd.Context()); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "purged %d entries from profile %s\n", removed, store.Profile())
				return nil
			})
		},
	}
	purgeCmd.Flags().BoolVarP(&confirm, "yes", "y", false, "Confirm the purge")

	profilesCmd := &cobra.Command{
		Use:   "profiles",
		Short: "List profiles with persisted state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			backing, closeFn, err := open(cmd.Context(), log)
			if err != nil {
				return err
			}
			defer func() { _ = closeFn() }()

			profiles, err := session.NewRegistry(backing, session.Options{Logger: log}).PersistedProfiles(cmd.Context())
			if err != nil {
				return err
			}
			for _, p := range profiles {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(showCmd, recordCmd, logoutCmd, purgeCmd, profilesCmd)
	return rootCmd
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
