package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/estellalin21/cam-u/internal/config"
	"github.com/estellalin21/cam-u/pkg/videoshare"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "cam-u",
		Short: "Share videos through git LFS and static hosted pages",
		Long: fmt.Sprintf(`cam-u copies a video into a local git repository, generates a static
player page and a QR code linking to it, and commits everything. Push
the repository and enable its pages feature to make the link live.

Supported video formats:
%s

Examples:
  # Prepare a repository for sharing
  cam-u init -r ~/video-repo

  # Share a video (omitted flags are prompted for)
  cam-u share -r ~/video-repo -i ~/clips/demo.mp4`,
			formatSupportedFormats()),
	}

	initCmd = &cobra.Command{
		Use:   "init",
		Short: "Prepare a working directory for sharing",
		Long: `Create the videos/, pages/, qrcodes/ and posters/ folders and, if the
directory is not under version control yet, initialize git with LFS
tracking for video files. Running it on an initialized repository is a
no-op beyond ensuring the folders exist.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &config.SetupOptions{}

			repoPath, _ := cmd.Flags().GetString("repo")
			verbose, _ := cmd.Flags().GetBool("verbose")

			opts.RepoPath = repoPath
			opts.Verbose = verbose

			if opts.RepoPath == "" {
				path, err := promptStdin("Enter the local repository path")
				if err != nil {
					return err
				}
				opts.RepoPath = path
			}

			sharer := videoshare.NewSharer(opts.Verbose)
			if err := sharer.Setup(opts); err != nil {
				return err
			}

			fmt.Printf("Repository ready: %s\n", opts.RepoPath)
			return nil
		},
	}

	shareCmd = &cobra.Command{
		Use:   "share",
		Short: "Copy a video into the repository and commit a player page and QR code",
		Long: `Copy a video into the repository, render a static player page for it,
encode the page's public URL into a QR image, and commit the new files.

Example:
  cam-u share -r ~/video-repo -i ~/clips/demo.mp4 -t "Demo day"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &config.ShareOptions{}

			repoPath, _ := cmd.Flags().GetString("repo")
			inputPath, _ := cmd.Flags().GetString("input")
			title, _ := cmd.Flags().GetString("title")
			baseURL, _ := cmd.Flags().GetString("base-url")
			skipPoster, _ := cmd.Flags().GetBool("skip-poster")
			verbose, _ := cmd.Flags().GetBool("verbose")

			opts.RepoPath = repoPath
			opts.InputPath = inputPath
			opts.Title = title
			opts.BaseURL = baseURL
			opts.SkipPoster = skipPoster
			opts.Verbose = verbose

			if opts.RepoPath == "" {
				path, err := promptStdin("Enter the local repository path")
				if err != nil {
					return err
				}
				opts.RepoPath = path
			}
			if opts.InputPath == "" {
				path, err := promptStdin("Enter the video file path (drag and drop works)")
				if err != nil {
					return err
				}
				opts.InputPath = strings.Trim(path, `"'`)
			}

			sharer := videoshare.NewSharer(opts.Verbose)
			sharer.Prompt = promptStdin

			fmt.Println("\nProcessing...")
			result, err := sharer.Share(opts)
			if err != nil {
				return err
			}

			fmt.Println("\n=== Shared successfully ===")
			fmt.Printf("Video:      %s\n", result.VideoPath)
			fmt.Printf("Player page: %s\n", result.PagePath)
			if result.PosterPath != "" {
				fmt.Printf("Poster:     %s\n", result.PosterPath)
			}
			fmt.Printf("Public URL: %s\n", result.PageURL)
			fmt.Printf("QR code:    %s\n", result.QRPath)
			if result.Meta != nil {
				fmt.Printf("Duration:   %.1fs (%dx%d, %s)\n",
					result.Meta.Duration, result.Meta.Width, result.Meta.Height, result.Meta.Codec)
			}
			fmt.Println("\nThe link goes live after you publish the repository:")
			fmt.Println("1. git push origin main")
			fmt.Println("2. Enable the pages feature in the repository settings")
			return nil
		},
	}
)

func formatSupportedFormats() string {
	var sb strings.Builder
	for _, ext := range videoshare.SupportedExtensions() {
		sb.WriteString(fmt.Sprintf("- %s\n", ext))
	}
	return sb.String()
}

func promptStdin(label string) (string, error) {
	fmt.Printf("%s: ", label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func init() {
	initCmd.Flags().StringP("repo", "r", "", "Local repository path")
	initCmd.Flags().BoolP("verbose", "v", false, "Enable verbose logging")

	shareCmd.Flags().StringP("repo", "r", "", "Local repository path")
	shareCmd.Flags().StringP("input", "i", "", "Video file to share")
	shareCmd.Flags().StringP("title", "t", "", "Page title (defaults to the video file name)")
	shareCmd.Flags().String("base-url", "", "Hosting base URL (skips remote detection)")
	shareCmd.Flags().Bool("skip-poster", false, "Do not extract a poster frame")
	shareCmd.Flags().BoolP("verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(shareCmd)
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
