package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Veraticus/claimflow/internal/cli"
	"github.com/Veraticus/claimflow/internal/claimform"
	"github.com/Veraticus/claimflow/internal/common"
	"github.com/Veraticus/claimflow/internal/model"
)

func newCmd() *cobra.Command {
	var (
		in       claimform.Input
		tagRefs  []string
		noBar    bool
		openView bool
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a claim with receipts and payout details",
		Long: `Create a new reimbursement claim.

Attachments given with --file are uploaded straight to storage before the
claim is submitted. A file that fails to upload is reported and left out;
the claim is still created with the others.

If --password is set the claim can only be opened with it. The password is
remembered on this machine.`,
		Example: `  claim new --title Taxi --amount 42.50 --currency CHF \
    --expense-at 2024-05-01T14:30 --iban CH9300762011623852957 \
    --tag travel --file receipt.jpg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			catalog := claimform.NewTagCatalog(a.client)
			var known []model.Tag
			if len(tagRefs) > 0 {
				ids, err := catalog.Resolve(ctx, tagRefs)
				if err != nil {
					return formError(err)
				}
				in.TagIDs = ids
				if known, err = catalog.Tags(ctx); err != nil {
					return common.NewUserError("Failed to load tags", err)
				}
			}

			// Nothing is uploaded for a form that cannot be submitted.
			if err := in.Validate(known); err != nil {
				return formError(err)
			}
			for _, f := range in.Files {
				if _, err := os.Stat(f); err != nil {
					return common.NewUserError(fmt.Sprintf("Cannot read attachment %s", f), err)
				}
			}

			ctx, stop := context.WithCancel(ctx)
			defer stop()
			interrupts := cli.NewInterruptHandler(cmd.ErrOrStderr(), "Claim creation")
			ctx = interrupts.HandleInterrupts(ctx, "No claim was created.")

			var uploads []claimform.Item
			if len(in.Files) > 0 {
				uploads = uploadFiles(ctx, cmd, a, in.Files, noBar)
				if interrupts.WasInterrupted() {
					return common.NewUserError("Interrupted", ctx.Err())
				}
				for _, failed := range claimform.Failed(uploads) {
					writeLine(out, cli.FormatWarning(fmt.Sprintf("%s was not attached: %s", failed.Name, failed.Err)))
				}
			}

			created, err := claimform.Submit(ctx, a.client, a.creds, in, uploads, known)
			if err != nil {
				if interrupts.WasInterrupted() {
					return common.NewUserError("Interrupted", err)
				}
				return formError(err)
			}
			a.remember(ctx, created)

			writeLine(out, cli.FormatSuccess(a.tr.T("Claim %s created", created.ID)))
			writeLine(out, cli.FormatInfo(a.tr.T("Share link: %s", a.claimLink(created.ID))))
			if in.Password != "" {
				writeLine(out, cli.FormatInfo(cli.LockIcon+" "+a.tr.T("Password saved on this machine")))
			}

			if openView {
				return runView(cmd, a, created.ID)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&in.Title, "title", "", "claim title (required)")
	f.StringVar(&in.Description, "description", "", "what the expense was for")
	f.StringVar(&in.Amount, "amount", "", "amount, e.g. 42.50 (required)")
	f.StringVar(&in.Currency, "currency", string(model.DefaultCurrency), "ISO 4217 currency code")
	f.StringVar(&in.ExpenseAt, "expense-at", "", "when the expense happened, e.g. 2024-05-01T14:30 (required)")
	f.StringVar(&in.Recipient, "recipient", "", "name of the payout recipient")
	f.StringVar(&in.Password, "password", "", "protect the claim with a password")
	f.StringVar(&in.Payout.BankName, "bank", "", "bank name")
	f.StringVar(&in.Payout.IBAN, "iban", "", "IBAN")
	f.StringVar(&in.Payout.AccountNumber, "account", "", "account number, when there is no IBAN")
	f.StringVar(&in.Payout.SWIFT, "swift", "", "SWIFT/BIC code")
	f.StringVar(&in.Payout.RoutingNumber, "routing", "", "routing number")
	f.StringVar(&in.Payout.BankAddress, "bank-address", "", "bank address")
	f.StringArrayVar(&tagRefs, "tag", nil, "tag id or label (repeatable)")
	f.StringArrayVar(&in.Files, "file", nil, "attachment to upload (repeatable)")
	f.BoolVar(&noBar, "no-progress", false, "do not show the upload progress bar")
	f.BoolVar(&openView, "view", false, "open the claim view after creating")

	return cmd
}

// uploadFiles runs every attachment through the upload pipeline.
func uploadFiles(ctx context.Context, cmd *cobra.Command, a *app, files []string, noBar bool) []claimform.Item {
	var progress *cli.UploadProgress

	uploader := claimform.NewUploader(a.client,
		claimform.WithParallelism(a.settings.UploadParallel),
		claimform.WithRetry(common.RetryOptions{MaxAttempts: 3}),
		claimform.WithProgress(func(it claimform.Item) {
			slog.Debug("Upload progress", "file", it.Name, "state", it.State)
		}),
		claimform.WithBodyWrapper(func(_ claimform.Item, r io.Reader) io.Reader {
			if progress == nil {
				return r
			}
			return progress.Wrap(r)
		}),
	)
	items := uploader.Prepare(files)

	if !noBar {
		var total int64
		for _, it := range items {
			if it.Size < 0 {
				total = -1
				break
			}
			total += it.Size
		}
		progress = cli.NewUploadProgress(cmd.ErrOrStderr(), total, len(items))
		defer progress.Finish()
	}

	return uploader.Upload(ctx, items)
}

func formError(err error) error {
	var verr *claimform.ValidationError
	if errors.As(err, &verr) {
		return common.NewUserError(fmt.Sprintf("Invalid %s: %s", verr.Field, verr.Message), err)
	}
	return common.NewUserError("Failed to create claim", err)
}
