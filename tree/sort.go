package tree

// Paired quicksort over (feature value, weighted target). Specializing the
// sort instead of going through sort.Interface avoids Less/Swap call
// overhead on the hot per-feature scan path; a radix float sort is a
// possible faster alternative.

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func pairSwap(x []float32, wt []weightedTarget, i, j int) {
	x[i], x[j] = x[j], x[i]
	wt[i], wt[j] = wt[j], wt[i]
}

func pairInsertionSort(x []float32, wt []weightedTarget, a, b int) {
	for i := a + 1; i < b; i++ {
		for j := i; j > a && x[j] < x[j-1]; j-- {
			pairSwap(x, wt, j, j-1)
		}
	}
}

func pairSiftDown(x []float32, wt []weightedTarget, lo, hi, first int) {
	root := lo
	for {
		child := 2*root + 1
		if child >= hi {
			break
		}
		if child+1 < hi && x[first+child] < x[first+child+1] {
			child++
		}
		if !(x[first+root] < x[first+child]) {
			return
		}
		pairSwap(x, wt, first+root, first+child)
		root = child
	}
}

func pairHeapSort(x []float32, wt []weightedTarget, a, b int) {
	first := a
	lo := 0
	hi := b - a

	for i := (hi - 1) / 2; i >= 0; i-- {
		pairSiftDown(x, wt, i, hi, first)
	}
	for i := hi - 1; i >= 0; i-- {
		pairSwap(x, wt, first, first+i)
		pairSiftDown(x, wt, lo, i, first)
	}
}

func pairMedianOfThree(x []float32, wt []weightedTarget, a, b, c int) {
	m0, m1, m2 := b, a, c
	if x[m1] < x[m0] {
		pairSwap(x, wt, m1, m0)
	}
	if x[m2] < x[m1] {
		pairSwap(x, wt, m2, m1)
	}
	if x[m1] < x[m0] {
		pairSwap(x, wt, m1, m0)
	}
}

func pairSwapRange(x []float32, wt []weightedTarget, a, b, n int) {
	for i := 0; i < n; i++ {
		pairSwap(x, wt, a+i, b+i)
	}
}

func pairDoPivot(x []float32, wt []weightedTarget, lo, hi int) (midlo, midhi int) {
	m := lo + (hi-lo)/2
	if hi-lo > 40 {
		s := (hi - lo) / 8
		pairMedianOfThree(x, wt, lo, lo+s, lo+2*s)
		pairMedianOfThree(x, wt, m, m-s, m+s)
		pairMedianOfThree(x, wt, hi-1, hi-1-s, hi-1-2*s)
	}
	pairMedianOfThree(x, wt, lo, m, hi-1)

	pivot := lo
	a, b, c, d := lo+1, lo+1, hi, hi
	for {
		for b < c {
			if x[b] < x[pivot] {
				b++
			} else if !(x[pivot] < x[b]) {
				pairSwap(x, wt, a, b)
				a++
				b++
			} else {
				break
			}
		}
		for b < c {
			if x[pivot] < x[c-1] {
				c--
			} else if !(x[c-1] < x[pivot]) {
				pairSwap(x, wt, c-1, d-1)
				c--
				d--
			} else {
				break
			}
		}
		if b >= c {
			break
		}
		pairSwap(x, wt, b, c-1)
		b++
		c--
	}

	n := minInt(b-a, a-lo)
	pairSwapRange(x, wt, lo, b-n, n)

	n = minInt(hi-d, d-c)
	pairSwapRange(x, wt, c, hi-n, n)

	return lo + b - a, hi - (d - c)
}

func pairQuickSort(x []float32, wt []weightedTarget, a, b, maxDepth int) {
	for b-a > 7 {
		if maxDepth == 0 {
			pairHeapSort(x, wt, a, b)
			return
		}
		maxDepth--
		mlo, mhi := pairDoPivot(x, wt, a, b)
		if mlo-a < b-mhi {
			pairQuickSort(x, wt, a, mlo, maxDepth)
			a = mhi
		} else {
			pairQuickSort(x, wt, mhi, b, maxDepth)
			b = mlo
		}
	}
	if b-a > 1 {
		pairInsertionSort(x, wt, a, b)
	}
}

// sortByFeatureVal sorts x (feature values) ascending, permuting wt along
// with it so wt[i] remains paired with x[i].
func sortByFeatureVal(x []float32, wt []weightedTarget) {
	n := len(x)
	maxDepth := 0
	for i := n; i > 0; i >>= 1 {
		maxDepth++
	}
	maxDepth *= 2
	pairQuickSort(x, wt, 0, n, maxDepth)
}
