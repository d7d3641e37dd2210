package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/erazemk/gamebase/internal/catalog"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill an empty catalog with demo games and categories",
	Long: `Insert the demo catalog: four categories and seven games. Nothing is
inserted if the catalog already contains games.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDatabase(cmd.Context(), cfg.DB)
		if err != nil {
			return err
		}
		defer database.Close()

		_, err = seedCatalog(cmd.Context(), database, cmd.OutOrStdout())
		return err
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

type demoGame struct {
	name        string
	description string
	price       string
	quantity    string
	categories  []int
}

var demoCategories = []string{"RPG", "Shooter", "Sports", "Open World"}

var demoGames = []demoGame{
	{
		"The Witcher 3",
		"Caza diversos monstruos sedientos de sangre, desde bestias salvajes que merodean por los pasos de montaña hasta astutos depredadores sobrenaturales que acechan en las sombras de las bulliciosas calles de las ciudades.",
		"20.50", "4", []int{0, 3},
	},
	{
		"Fallout 3",
		"Juego de rol de acción ambientado en el páramo árido de una sociedad post-apocalíptica.",
		"10.99", "2", []int{0, 3},
	},
	{
		"Red Dead Redemption II",
		"Después de que un robo sale mal en la ciudad occidental de Blackwater, Arthur Morgan y la banda Van der Linde se ven obligados a huir con agentes federales y cazarrecompensas pisándoles los talones.",
		"30.99", "10", []int{3},
	},
	{
		"FIFA 23",
		"Simulación de fútbol.",
		"25.00", "5", []int{2},
	},
	{
		"Juego de prueba 1",
		"Descripcion del juego de prueba 1",
		"1.00", "1", []int{0},
	},
	{
		"Juego de prueba 2",
		"Descripcion del juego de prueba 2",
		"1.05", "1", nil,
	},
	{
		"Call of Duty Black Ops",
		"Shooter en primera persona. El jugador asume el papel de un soldado de infantería que puede empuñar varias armas de fuego (de las cuales sólo se pueden llevar dos a la vez), lanzar granadas y otros explosivos y utilizar otros equipos como armas.",
		"9.99", "3", []int{1},
	},
}

type seedResult struct {
	Categories int
	Games      int
	Skipped    bool
}

// seedCatalog inserts the demo catalog through the services, so every
// record passes the same validation as a form submission.
func seedCatalog(ctx context.Context, database *sql.DB, out io.Writer) (seedResult, error) {
	categories := catalog.NewCategories(database)
	games := catalog.NewGames(database)

	n, err := games.Count(ctx)
	if err != nil {
		return seedResult{}, err
	}
	if n > 0 {
		printWarning(out, "catalog already has %d games, nothing inserted", n)
		return seedResult{Skipped: true}, nil
	}

	var res seedResult

	printSection(out, "Adding categories")
	ids := make([]string, len(demoCategories))
	for i, name := range demoCategories {
		c, created, err := categories.Create(ctx, catalog.CategoryInput{Name: name})
		if err != nil {
			return res, fmt.Errorf("creating category %s: %w", name, err)
		}
		ids[i] = c.ID
		if created {
			res.Categories++
			printSuccess(out, "Added category: %s", name)
		} else {
			printMuted(out, "  category %s already exists", c.Name)
		}
	}

	printSection(out, "Adding games")
	for _, d := range demoGames {
		in := catalog.GameInput{
			Name:        d.name,
			Description: d.description,
			Price:       d.price,
			Quantity:    d.quantity,
		}
		for _, i := range d.categories {
			in.Categories = append(in.Categories, ids[i])
		}

		if _, err := games.Create(ctx, in); err != nil {
			return res, fmt.Errorf("creating game %s: %w", d.name, err)
		}
		res.Games++
		printSuccess(out, "Added game: %s", d.name)
	}

	fmt.Fprintln(out)
	printMuted(out, "%d categories and %d games added", res.Categories, res.Games)
	return res, nil
}
