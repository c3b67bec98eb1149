// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layer

import (
	"fmt"
	"reflect"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/ggbuild/aes"
	"github.com/aclements/ggbuild/frame"
	"github.com/aclements/ggbuild/panel"
)

// mapping returns the layer's effective aesthetic mapping.
func (l *Layer) mapping(plotMapping aes.Mapping) aes.Mapping {
	if l.InheritAes {
		return l.Mapping.Over(plotMapping)
	}
	return l.Mapping
}

// ComputeAesthetics evaluates the layer's aesthetic mapping against
// data and assigns groups.
//
// Aesthetics fixed by parameters and calculated aesthetics are not
// evaluated. Every evaluated aesthetic gets a default scale in ctx if
// it does not have one yet. Each aesthetic must evaluate to one value,
// which is repeated, or to one value per row of data. If data has no
// rows, the number of rows is the length of the longest aesthetic.
func (l *Layer) ComputeAesthetics(data frame.Frame, plotMapping aes.Mapping, ctx *panel.Context) (frame.Frame, error) {
	m := l.mapping(plotMapping).Filter(func(b aes.Binding) bool {
		return !l.AesParams.Has(b.Aes) && !aes.IsCalculated(b.Expr)
	})
	if g, ok := l.AesParams["group"]; ok {
		m = m.Set("group", aes.Const(g))
	}

	if l.Subset != nil && !data.Empty() {
		var err error
		if data, err = subset(data, l.Subset, ctx.Env()); err != nil {
			return frame.Frame{}, err
		}
	}

	cols := make([]table.Slice, len(m))
	n := data.Len()
	for i, b := range m {
		v, err := b.Expr.Eval(data, ctx.Env())
		if err != nil {
			return frame.Frame{}, fmt.Errorf("aesthetic %s: %w", b.Aes, err)
		}
		ctx.AddDefaultScale(b.Aes, v)
		cols[i] = v
		if data.Empty() && frame.Len(v) > n {
			n = frame.Len(v)
		}
	}

	b := new(table.Builder)
	for i, bind := range m {
		v := cols[i]
		switch frame.Len(v) {
		case n:
		case 1:
			v = frame.Repeat(v, n)
		default:
			return frame.Frame{}, &AestheticLengthError{bind.Aes, frame.Len(v), n}
		}
		b.Add(bind.Aes, v)
	}
	if n == 0 {
		return frame.New(b.Done()), nil
	}
	if p := data.Column(frame.Panel); p != nil && data.Len() == n {
		b.Add(frame.Panel, p)
	} else {
		b.Add(frame.Panel, frame.Repeat([]int{1}, n))
	}
	return AddGroup(frame.New(b.Done())), nil
}

func subset(data frame.Frame, pred aes.Expr, env aes.Env) (frame.Frame, error) {
	v, err := pred.Eval(data, env)
	if err != nil {
		return frame.Frame{}, fmt.Errorf("subset: %w", err)
	}
	keep, ok := v.([]bool)
	if !ok {
		return frame.Frame{}, fmt.Errorf("subset must evaluate to []bool, not %T", v)
	}
	if len(keep) == 1 {
		keep = frame.Repeat(keep, data.Len()).([]bool)
	}
	if len(keep) != data.Len() {
		return frame.Frame{}, &AestheticLengthError{"subset", len(keep), data.Len()}
	}
	var rows []int
	for i, k := range keep {
		if k {
			rows = append(rows, i)
		}
	}
	return data.Select(rows), nil
}

// AddGroup returns f with a frame.Group column identifying the group
// of each row.
//
// Groups are the distinct combinations of the panel, the "group"
// aesthetic, and every discrete aesthetic other than "label". If f
// has no such aesthetics, every row gets frame.NoGroup. Otherwise,
// combinations are numbered from 1 in sorted order, with missing
// values last, so group numbers do not depend on row order.
func AddGroup(f frame.Frame) frame.Frame {
	var keys []string
	for _, col := range f.Columns() {
		switch col {
		case "label", frame.Panel, frame.Group:
			continue
		case "group":
			keys = append(keys, col)
			continue
		}
		if !frame.IsNumeric(f.Column(col)) {
			keys = append(keys, col)
		}
	}

	n := f.Len()
	if len(keys) == 0 {
		return f.With(frame.Group, frame.Repeat([]int{frame.NoGroup}, n))
	}
	ids := make([]int, n)
	for i, part := range f.Split(append([]string{frame.Panel}, keys...)...) {
		for _, row := range part.Rows {
			ids[row] = i + 1
		}
	}
	return f.With(frame.Group, ids)
}

// ComputeStatistic computes the layer's stat.
//
// Unless the stat implements StatLayerComputer, the data is split by
// panel and group and the stat computed for each part. Parts whose
// result is empty are dropped with a warning. Columns of the input
// that are constant within a part are carried into the part's result
// if the stat does not produce them.
func (l *Layer) ComputeStatistic(data frame.Frame, ctx *panel.Context) (frame.Frame, error) {
	if data.Empty() {
		return data, nil
	}
	info := l.Stat.Info()

	params := l.StatParams.Merge(nil)
	if ps, ok := l.Stat.(StatParamSetter); ok {
		var err error
		if params, err = ps.SetupParams(data, params); err != nil {
			return frame.Frame{}, fmt.Errorf("stat %s: %w", info.Name, err)
		}
	}
	if ds, ok := l.Stat.(StatDataSetter); ok {
		out, err := ds.SetupData(data, params)
		if err != nil {
			return frame.Frame{}, fmt.Errorf("stat %s: %w", info.Name, err)
		}
		if out.Len() != data.Len() {
			return frame.Frame{}, fmt.Errorf("stat %s: SetupData changed %d rows to %d", info.Name, data.Len(), out.Len())
		}
		data = out
	}

	if missing := missingAes(info.Required, data, nil); missing != nil {
		return frame.Frame{}, &MissingAesError{"stat", info.Name, missing}
	}

	if lc, ok := l.Stat.(StatLayerComputer); ok {
		out, err := lc.ComputeLayer(data, params, ctx)
		if err != nil {
			return frame.Frame{}, fmt.Errorf("stat %s: %w", info.Name, err)
		}
		return out, nil
	}

	var results []frame.Frame
	for _, part := range data.Split(frame.Panel, frame.Group) {
		id, group := toInt(part.Key[0]), toInt(part.Key[1])
		res, err := l.Stat.ComputeGroup(part.Frame, ctx.Ranges(id), params)
		if err != nil {
			return frame.Frame{}, fmt.Errorf("stat %s: %w", info.Name, err)
		}
		if res.Empty() {
			ctx.Warnf("stat %s: computation failed for group %d of panel %d; dropping it", info.Name, group, id)
			continue
		}
		res = carryConstants(part.Frame, res)
		if !res.Has(frame.Panel) {
			res = res.WithConst(frame.Panel, id)
		}
		if !res.Has(frame.Group) {
			res = res.WithConst(frame.Group, group)
		}
		results = append(results, res)
	}
	return frame.Concat(results...), nil
}

// carryConstants adds to res the columns of in that res lacks and that
// have a single value in every row of in.
func carryConstants(in, res frame.Frame) frame.Frame {
	for _, col := range in.Columns() {
		if res.Has(col) {
			continue
		}
		v := in.Value(col, 0)
		constant := true
		for i := 1; i < in.Len(); i++ {
			if frame.Compare(v, in.Value(col, i)) != 0 {
				constant = false
				break
			}
		}
		if constant {
			res = res.With(col, frame.Repeat(in.Column(col), res.Len()))
		}
	}
	return res
}

// MapStatistic evaluates the calculated aesthetics of the layer's
// mapping and the stat's default mapping against the stat's output,
// and merges the results into data. Calculated aesthetics are
// evaluated only against data, without the plot environment.
func (l *Layer) MapStatistic(data frame.Frame, plotMapping aes.Mapping, ctx *panel.Context) (frame.Frame, error) {
	if data.Empty() {
		return data, nil
	}
	info := l.Stat.Info()
	m := l.mapping(plotMapping).Over(info.Defaults).Filter(func(b aes.Binding) bool {
		return aes.IsCalculated(b.Expr) && !l.AesParams.Has(b.Aes)
	})
	if len(m) == 0 {
		return data, nil
	}

	n := data.Len()
	b := new(table.Builder)
	for _, bind := range m {
		v, err := aes.Strip(bind.Expr).Eval(data, nil)
		if err != nil {
			return frame.Frame{}, fmt.Errorf("aesthetic %s: %w", bind.Aes, err)
		}
		switch frame.Len(v) {
		case n:
		case 1:
			v = frame.Repeat(v, n)
		default:
			return frame.Frame{}, &AestheticLengthError{bind.Aes, frame.Len(v), n}
		}
		ctx.AddDefaultScale(bind.Aes, v)
		b.Add(bind.Aes, v)
	}
	statData := frame.New(b.Done())
	if info.Retransform {
		statData = ctx.Transform(statData)
	}
	return data.Merge(statData), nil
}

// ComputeGeom1 runs the geom's data setup and checks that every
// aesthetic the geom requires is present as a column or fixed by a
// parameter.
func (l *Layer) ComputeGeom1(data frame.Frame) (frame.Frame, error) {
	if data.Empty() {
		return data, nil
	}
	info := l.Geom.Info()
	if ds, ok := l.Geom.(GeomDataSetter); ok {
		var err error
		if data, err = ds.SetupData(data, l.GeomParams.Merge(l.AesParams)); err != nil {
			return frame.Frame{}, fmt.Errorf("geom %s: %w", info.Name, err)
		}
	}
	if missing := missingAes(info.Required, data, l.AesParams); missing != nil {
		return frame.Frame{}, &MissingAesError{"geom", info.Name, missing}
	}
	return data, nil
}

// ComputePosition runs the layer's position adjustment on each panel.
// The result has the same rows, in the same order, and the same
// columns as data.
func (l *Layer) ComputePosition(data frame.Frame, ctx *panel.Context) (frame.Frame, error) {
	if data.Empty() {
		return data, nil
	}
	name := l.Position.Name()

	var params Params
	if ps, ok := l.Position.(PositionParamSetter); ok {
		var err error
		if params, err = ps.SetupParams(data); err != nil {
			return frame.Frame{}, fmt.Errorf("position %s: %w", name, err)
		}
	}
	if ds, ok := l.Position.(PositionDataSetter); ok {
		var err error
		if data, err = ds.SetupData(data, params); err != nil {
			return frame.Frame{}, fmt.Errorf("position %s: %w", name, err)
		}
	}

	parts := data.Split(frame.Panel)
	results := make([]frame.Frame, len(parts))
	var order []int
	for i, part := range parts {
		res, err := l.Position.ComputePanel(part.Frame, params, ctx.Ranges(toInt(part.Key[0])))
		if err != nil {
			return frame.Frame{}, fmt.Errorf("position %s: %w", name, err)
		}
		if res.Len() != part.Frame.Len() || !sameColumns(res, part.Frame) {
			return frame.Frame{}, fmt.Errorf("position %s: changed the rows or columns of panel %v", name, part.Key[0])
		}
		results[i] = res
		order = append(order, part.Rows...)
	}
	if len(results) == 1 {
		return results[0], nil
	}

	// Restore the original row order.
	out := frame.Concat(results...)
	inv := make([]int, len(order))
	for i, row := range order {
		inv[row] = i
	}
	return out.Select(inv), nil
}

func sameColumns(a, b frame.Frame) bool {
	ac, bc := a.Columns(), b.Columns()
	if len(ac) != len(bc) {
		return false
	}
	have := stringSet(ac)
	for _, c := range bc {
		if !have[c] {
			return false
		}
	}
	return true
}

// ComputeGeom2 adds every default aesthetic of the geom that data
// lacks, using the value fixed by the layer's parameters if there is
// one and the geom's default otherwise. Aesthetics fixed by
// parameters that are not defaults of the geom are added as well.
func (l *Layer) ComputeGeom2(data frame.Frame) frame.Frame {
	if data.Empty() {
		return data
	}
	for _, d := range l.Geom.Info().Defaults {
		if data.Has(d.Aes) {
			continue
		}
		v := d.Value
		if p, ok := l.AesParams[d.Aes]; ok {
			v = p
		}
		data = data.WithConst(d.Aes, v)
	}
	for _, k := range l.AesParams.Keys() {
		if k != "group" && !data.Has(k) {
			data = data.WithConst(k, l.AesParams[k])
		}
	}
	return data
}

func toInt(v interface{}) int {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(rv.Int())
	case reflect.Float32, reflect.Float64:
		return int(rv.Float())
	}
	return 0
}
