package warehouse

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodega-core/internal/domain"
	"github.com/jhoicas/bodega-core/internal/domain/entity"
)

// Ingestión de texto: tres tipos de registro pipe-delimited, uno por línea.
//
//	PARTNER|id|name|address
//	BATCH_S|productId|partnerId|price|stock
//	BATCH_M|productId|partnerId|price|stock|multiplier|compId:qty#compId:qty#...
//
// BATCH_S registra/actualiza un producto simple y un lote; BATCH_M hace lo
// propio con un producto derivado (cada componente de la receta debe estar ya
// registrado). Cualquier otro token inicial es un BadEntryError con el token
// ofensor; un id de socio ya conocido es un DuplicatePartnerError.

// ImportFile importa un fichero de texto línea a línea.
func (w *Warehouse) ImportFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("abrir %s: %w", path, err)
	}
	defer f.Close()
	return w.ImportReader(f)
}

// ImportReader importa registros desde un reader, una línea por registro.
// Las líneas vacías se ignoran. Se detiene en el primer error.
func (w *Warehouse) ImportReader(r io.Reader) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}
		if err := w.importLine(line); err != nil {
			return fmt.Errorf("línea %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("leer entrada: %w", err)
	}
	return nil
}

func (w *Warehouse) importLine(line string) error {
	fields := strings.Split(line, "|")
	switch fields[0] {
	case "PARTNER":
		if len(fields) != 4 {
			return fmt.Errorf("PARTNER con %d campos: %w", len(fields), domain.ErrBadEntry)
		}
		_, err := w.registerPartner(fields[1], fields[2], fields[3])
		return err

	case "BATCH_S":
		if len(fields) != 5 {
			return fmt.Errorf("BATCH_S con %d campos: %w", len(fields), domain.ErrBadEntry)
		}
		price, stock, err := parsePriceStock(fields[3], fields[4])
		if err != nil {
			return err
		}
		partner, err := w.lookupPartner(fields[2])
		if err != nil {
			return err
		}
		product, _, err := w.upsertSimple(fields[1])
		if err != nil {
			return err
		}
		w.registerBatch(product, partner, price, stock)
		return nil

	case "BATCH_M":
		if len(fields) != 7 {
			return fmt.Errorf("BATCH_M con %d campos: %w", len(fields), domain.ErrBadEntry)
		}
		price, stock, err := parsePriceStock(fields[3], fields[4])
		if err != nil {
			return err
		}
		multiplier, err := decimal.NewFromString(fields[5])
		if err != nil {
			return fmt.Errorf("multiplicador %q: %w", fields[5], domain.ErrBadEntry)
		}
		recipe, err := parseRecipe(fields[6])
		if err != nil {
			return err
		}
		partner, err := w.lookupPartner(fields[2])
		if err != nil {
			return err
		}
		product, _, err := w.upsertDerivative(fields[1], recipe, multiplier)
		if err != nil {
			return err
		}
		w.registerBatch(product, partner, price, stock)
		return nil

	default:
		return &domain.BadEntryError{Token: fields[0]}
	}
}

func parsePriceStock(priceField, stockField string) (decimal.Decimal, int, error) {
	price, err := decimal.NewFromString(priceField)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("precio %q: %w", priceField, domain.ErrBadEntry)
	}
	stock, err := strconv.Atoi(stockField)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("stock %q: %w", stockField, domain.ErrBadEntry)
	}
	return price, stock, nil
}

// parseRecipe interpreta `compId:qty#compId:qty#...`.
func parseRecipe(field string) (entity.Recipe, error) {
	parts := strings.Split(field, "#")
	recipe := make(entity.Recipe, 0, len(parts))
	for _, part := range parts {
		idQty := strings.Split(part, ":")
		if len(idQty) != 2 {
			return nil, fmt.Errorf("componente %q: %w", part, domain.ErrBadEntry)
		}
		qty, err := strconv.Atoi(idQty[1])
		if err != nil {
			return nil, fmt.Errorf("cantidad %q: %w", idQty[1], domain.ErrBadEntry)
		}
		recipe = append(recipe, entity.Component{ProductID: idQty[0], Quantity: qty})
	}
	return recipe, nil
}
