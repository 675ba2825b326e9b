package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"rental-records/internal/backup"
)

func BackupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup [entity] [file]",
		Short: "Write a copy of an entity's records to another file",
		Long:  "Writes the records of one entity to the given file. A bare file name is placed in the backup directory. With --upload the file is also copied to the configured S3 bucket.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			upload, _ := cmd.Flags().GetBool("upload")

			s, err := openSession(cmd, nil)
			if err != nil {
				return err
			}
			t, err := s.table(args[0])
			if err != nil {
				return err
			}
			path, err := s.backupPath(args[1])
			if err != nil {
				return err
			}
			if err := t.SaveBackup(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %d %s records to %s\n", t.Len(), t.Name(), path)

			if !upload {
				return nil
			}
			uploader, err := backup.NewS3Uploader(cmd.Context(), s.cfg.S3)
			if err != nil {
				return fmt.Errorf("failed to create uploader: %w", err)
			}
			key, err := backup.UploadFile(cmd.Context(), uploader, s.cfg.S3.Prefix, path)
			if err != nil {
				return err
			}
			s.logger.Info("uploaded backup", "bucket", s.cfg.S3.Bucket, "key", key)
			fmt.Fprintf(cmd.OutOrStdout(), "Uploaded to s3://%s/%s\n", s.cfg.S3.Bucket, key)
			return nil
		},
	}

	cmd.Flags().Bool("upload", false, "Upload the backup to the configured S3 bucket")

	return cmd
}
