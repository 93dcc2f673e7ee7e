package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"mediavault/internal/albums"
	"mediavault/internal/auth"
	"mediavault/internal/files"
)

var (
	albumDescription string
	albumNewName     string
)

var albumCmd = &cobra.Command{
	Use:   "album",
	Short: "Manage albums",
}

var albumCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new album",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}
		defer engine.Close()

		if !auth.CanManageAlbums(engine.CurrentUser()) {
			return fmt.Errorf("you do not have permission to manage albums")
		}

		album, err := engine.Albums.Create(args[0], albumDescription)
		if err != nil {
			return err
		}
		fmt.Printf("Created album %s (%s)\n", album.Name, album.ID)
		return nil
	},
}

var albumListCmd = &cobra.Command{
	Use:   "list",
	Short: "List albums",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}
		defer engine.Close()

		for _, a := range engine.Albums.List() {
			fmt.Printf("%-40s  %3d files  %s\n", a.ID, len(a.FileIDs), a.Name)
		}
		return nil
	},
}

var albumShowCmd = &cobra.Command{
	Use:   "show <albumID>",
	Short: "Show an album and its files",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}
		defer engine.Close()

		for _, a := range engine.Albums.List() {
			if a.ID != args[0] {
				continue
			}

			fmt.Printf("%s\n", a.Name)
			if a.Description != "" {
				fmt.Printf("  %s\n", a.Description)
			}

			allFiles := files.ToMediaFiles(engine.Files.List())
			members := albums.FilesOf(a, allFiles)

			// A cover deleted from the library is simply not shown.
			if a.CoverImage != "" {
				for _, m := range members {
					if m.ID == a.CoverImage {
						fmt.Printf("  cover: %s\n", m.Name)
						break
					}
				}
			}

			for _, m := range members {
				fmt.Printf("  %-32s  %-6s  %s\n", m.ID, m.Type, m.Name)
			}
			return nil
		}

		return fmt.Errorf("album not found: %s", args[0])
	},
}

var albumUpdateCmd = &cobra.Command{
	Use:   "update <albumID>",
	Short: "Update album name or description",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}
		defer engine.Close()

		if !auth.CanManageAlbums(engine.CurrentUser()) {
			return fmt.Errorf("you do not have permission to manage albums")
		}

		var upd albums.Update
		if cmd.Flags().Changed("name") {
			upd.Name = &albumNewName
		}
		if cmd.Flags().Changed("description") {
			upd.Description = &albumDescription
		}

		album, ok := engine.Albums.Update(args[0], upd)
		if !ok {
			return fmt.Errorf("album not found: %s", args[0])
		}
		fmt.Printf("Updated album %s\n", album.ID)
		return nil
	},
}

var albumDeleteCmd = &cobra.Command{
	Use:   "delete <albumID>",
	Short: "Delete an album (member files are kept)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}
		defer engine.Close()

		if !auth.CanManageAlbums(engine.CurrentUser()) {
			return fmt.Errorf("you do not have permission to manage albums")
		}

		engine.Albums.Delete(args[0])
		fmt.Println("Album deleted")
		return nil
	},
}

var albumAddCmd = &cobra.Command{
	Use:   "add <albumID> <fileID>",
	Short: "Add a file to an album",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}
		defer engine.Close()

		if !auth.CanManageAlbums(engine.CurrentUser()) {
			return fmt.Errorf("you do not have permission to manage albums")
		}

		if !engine.Albums.AddFile(args[0], args[1]) {
			fmt.Println("Nothing to do: album not found or file already in album")
			return nil
		}
		fmt.Println("File added to album")
		return nil
	},
}

var albumRemoveCmd = &cobra.Command{
	Use:   "remove <albumID> <fileID>",
	Short: "Remove a file from an album",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}
		defer engine.Close()

		if !auth.CanManageAlbums(engine.CurrentUser()) {
			return fmt.Errorf("you do not have permission to manage albums")
		}

		if !engine.Albums.RemoveFile(args[0], args[1]) {
			return fmt.Errorf("album not found: %s", args[0])
		}
		fmt.Println("File removed from album")
		return nil
	},
}

var albumCoverCmd = &cobra.Command{
	Use:   "cover <albumID> <fileID>",
	Short: "Set an album's cover image",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}
		defer engine.Close()

		if !auth.CanManageAlbums(engine.CurrentUser()) {
			return fmt.Errorf("you do not have permission to manage albums")
		}

		if !engine.Albums.SetCover(args[0], args[1]) {
			return fmt.Errorf("cover not set: album not found or file is not a member")
		}
		fmt.Println("Cover image set")
		return nil
	},
}

var albumsOfCmd = &cobra.Command{
	Use:   "of <fileID>",
	Short: "List albums containing a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}
		defer engine.Close()

		for _, a := range engine.Albums.AlbumsContaining(args[0]) {
			fmt.Printf("%-40s  %s\n", a.ID, a.Name)
		}
		return nil
	},
}

func init() {
	albumCreateCmd.Flags().StringVarP(&albumDescription, "description", "d", "", "Album description")
	albumUpdateCmd.Flags().StringVar(&albumNewName, "name", "", "New album name")
	albumUpdateCmd.Flags().StringVarP(&albumDescription, "description", "d", "", "New album description")

	albumCmd.AddCommand(albumCreateCmd)
	albumCmd.AddCommand(albumListCmd)
	albumCmd.AddCommand(albumShowCmd)
	albumCmd.AddCommand(albumUpdateCmd)
	albumCmd.AddCommand(albumDeleteCmd)
	albumCmd.AddCommand(albumAddCmd)
	albumCmd.AddCommand(albumRemoveCmd)
	albumCmd.AddCommand(albumCoverCmd)
	albumCmd.AddCommand(albumsOfCmd)
}
