package bot

import (
	"log"
)

func (b *Bot) printDailyStatistics() (err error) {
	defer func() {
		if err != nil {
			log.Printf("error while printing daily statistics: %v", err)
		}
	}()

	ddr, err := b.ddr.Count(b.ctx)
	if err != nil {
		return err
	}
	iidx, err := b.iidx.Count(b.ctx)
	if err != nil {
		return err
	}

	log.Println("daily statistics:")
	log.Printf("  %d ddr rival codes", ddr)
	log.Printf("  %d iidx rival codes", iidx)
	log.Printf("  %d total rival codes", ddr+iidx)
	return nil
}
