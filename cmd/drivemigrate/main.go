// Command drivemigrate is a one-off migration that pulls artisan images
// still referenced by Google Drive links down to local disk and rewrites
// the stored paths. Safe to re-run: rows already pointing at local files
// are skipped.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/oauth2/google"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"gorm.io/gorm"

	"github.com/craftlink/artisan-registry-backend/config"
	"github.com/craftlink/artisan-registry-backend/database"
)

const downloadWorkers = 4

func main() {
	dryRun := flag.Bool("dry-run", false, "list rows that would be migrated without downloading")
	flag.Parse()

	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	ctx := context.Background()
	svc, err := driveService(ctx)
	if err != nil {
		log.Fatalf("failed to init drive client: %v", err)
	}

	migrated, err := migrateTable(ctx, db, svc, cfg.UploadDir, "product_images", *dryRun)
	if err != nil {
		log.Fatalf("product images migration failed: %v", err)
	}
	log.Printf("product_images: %d rows migrated", migrated)

	migrated, err = migrateTable(ctx, db, svc, cfg.UploadDir, "shop_images", *dryRun)
	if err != nil {
		log.Fatalf("shop images migration failed: %v", err)
	}
	log.Printf("shop_images: %d rows migrated", migrated)
}

func driveService(ctx context.Context) (*drive.Service, error) {
	credsPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	if credsPath == "" {
		return nil, fmt.Errorf("GOOGLE_APPLICATION_CREDENTIALS is not set")
	}

	data, err := os.ReadFile(credsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials: %w", err)
	}

	creds, err := google.CredentialsFromJSON(ctx, data, drive.DriveReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse credentials: %w", err)
	}

	return drive.NewService(ctx, option.WithTokenSource(creds.TokenSource))
}

type imageRow struct {
	ID   uint
	Path string
}

func migrateTable(ctx context.Context, db *gorm.DB, svc *drive.Service, uploadRoot, table string, dryRun bool) (int, error) {
	var rows []imageRow
	err := db.WithContext(ctx).Table(table).
		Select("id, path").
		Where("path LIKE ?", "%drive.google.com%").
		Find(&rows).Error
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}

	destDir := filepath.Join(uploadRoot, table)
	if err := os.MkdirAll(destDir, os.ModePerm); err != nil {
		return 0, err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(downloadWorkers)

	migrated := 0
	for _, row := range rows {
		fileID := driveFileID(row.Path)
		if fileID == "" {
			log.Printf("%s id=%d: could not extract drive file id from %q, skipping", table, row.ID, row.Path)
			continue
		}
		if dryRun {
			log.Printf("%s id=%d: would download %s", table, row.ID, fileID)
			migrated++
			continue
		}

		migrated++
		g.Go(func() error {
			localPath, err := downloadFile(ctx, svc, fileID, destDir)
			if err != nil {
				return fmt.Errorf("%s id=%d: %w", table, row.ID, err)
			}
			relPath := filepath.ToSlash(filepath.Join(table, filepath.Base(localPath)))
			return db.WithContext(ctx).Table(table).
				Where("id = ?", row.ID).
				Update("path", relPath).Error
		})
	}

	if err := g.Wait(); err != nil {
		return migrated, err
	}
	return migrated, nil
}

// driveFileID pulls the file id out of the share-link shapes Drive hands
// out: .../file/d/<id>/view, .../open?id=<id>, .../uc?id=<id>.
func driveFileID(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	if id := u.Query().Get("id"); id != "" {
		return id
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i, p := range parts {
		if p == "d" && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return ""
}

func downloadFile(ctx context.Context, svc *drive.Service, fileID, destDir string) (string, error) {
	meta, err := svc.Files.Get(fileID).Fields("name").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to stat drive file %s: %w", fileID, err)
	}

	resp, err := svc.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return "", fmt.Errorf("failed to download drive file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	name := meta.Name
	if name == "" {
		name = fileID
	}
	// Prefix with the drive id so two files with the same name never collide.
	dest := filepath.Join(destDir, fileID+"_"+filepath.Base(name))

	out, err := os.Create(dest)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		os.Remove(dest)
		return "", err
	}
	return dest, nil
}
